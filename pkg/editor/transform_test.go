package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/michalprusek/segedit/pkg/geometry"
)

func TestTransformToImage(t *testing.T) {
	tr := Transform{Zoom: 2, Offset: geometry.NewPoint(10, 20)}

	img := tr.ToImage(geometry.NewPoint(100, 60))
	assert.InDelta(t, 40.0, img.X, 1e-9) // 100/2 - 10
	assert.InDelta(t, 10.0, img.Y, 1e-9) // 60/2 - 20
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{Zoom: 0.5, Offset: geometry.NewPoint(-30, 12.5)}

	original := geometry.NewPoint(123.4, -56.7)
	back := tr.ToImage(tr.ToScreen(original))

	assert.InDelta(t, original.X, back.X, 1e-9)
	assert.InDelta(t, original.Y, back.Y, 1e-9)
}

func TestTransformIdentity(t *testing.T) {
	tr := NewTransform()
	p := geometry.NewPoint(42, 7)
	assert.Equal(t, p, tr.ToImage(p))
	assert.Equal(t, p, tr.ToScreen(p))
}

func TestHitThresholdWidensUnderLowZoom(t *testing.T) {
	zoomedOut := Transform{Zoom: 0.5}
	assert.InDelta(t, 30.0, zoomedOut.HitThreshold(15), 1e-9)

	zoomedIn := Transform{Zoom: 4}
	assert.InDelta(t, 15.0, zoomedIn.HitThreshold(15), 1e-9)

	identity := NewTransform()
	assert.InDelta(t, 15.0, identity.HitThreshold(15), 1e-9)
}
