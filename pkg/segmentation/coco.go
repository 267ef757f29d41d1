package segmentation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/michalprusek/segedit/pkg/geometry"
)

// COCOAnnotation is one polygon in COCO instance-segmentation format
type COCOAnnotation struct {
	ID           int         `json:"id"`
	ImageID      int         `json:"image_id"`
	CategoryID   int         `json:"category_id"`
	Segmentation [][]float64 `json:"segmentation"`
	Area         float64     `json:"area"`
	BBox         [4]float64  `json:"bbox"`
	IsCrowd      int         `json:"iscrowd"`
	Score        float64     `json:"score,omitempty"`
}

// COCOImage describes the source image of an annotation set
type COCOImage struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// COCOCategory is the single "cell" category used for all polygons
type COCOCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// COCODocument is a minimal COCO export of one segmentation result
type COCODocument struct {
	Images      []COCOImage      `json:"images"`
	Annotations []COCOAnnotation `json:"annotations"`
	Categories  []COCOCategory   `json:"categories"`
}

// ToCOCO converts a segmentation result to COCO format. External polygons
// only; holes are not representable without grouping and are skipped.
func ToCOCO(result *Result) *COCODocument {
	doc := &COCODocument{
		Images: []COCOImage{{
			ID:       1,
			FileName: result.ImageSrc,
			Width:    result.ImageWidth,
			Height:   result.ImageHeight,
		}},
		Categories: []COCOCategory{{ID: 1, Name: "cell"}},
	}

	nextID := 1
	for _, poly := range result.Polygons {
		if poly.Type == Internal {
			continue
		}

		flattened := make([]float64, 0, len(poly.Points)*2)
		for _, p := range poly.Points {
			flattened = append(flattened, p.X, p.Y)
		}

		area := poly.Area
		if area == 0 {
			area = geometry.Area(poly.Points)
		}

		bbox := geometry.BoundsOf(poly.Points)
		size := bbox.Size()

		doc.Annotations = append(doc.Annotations, COCOAnnotation{
			ID:           nextID,
			ImageID:      1,
			CategoryID:   1,
			Segmentation: [][]float64{flattened},
			Area:         area,
			BBox:         [4]float64{bbox.Min.X, bbox.Min.Y, size.X, size.Y},
			IsCrowd:      0,
			Score:        poly.Confidence,
		})
		nextID++
	}

	return doc
}

// SaveCOCO writes the COCO export of a segmentation result to a JSON file
func SaveCOCO(filename string, result *Result) error {
	doc := ToCOCO(result)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode COCO document: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write COCO file: %w", err)
	}
	return nil
}
