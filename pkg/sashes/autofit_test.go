package sashes_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sashes/pkg/sashes"
)

func TestAutoFitter_CoalescesNotifications(t *testing.T) {
	container := &resizableContainer{box: sashes.Box{Width: 800, Height: 600}}
	wm, _ := newManager(t, threePanes(), func(o *sashes.Options) {
		o.Container = container
		o.FitInterval = 10 * time.Millisecond
	})
	fitter := sashes.NewAutoFitter(wm, 0)
	t.Cleanup(fitter.Stop)

	observed := container.observed()
	container.set(sashes.Box{Width: 1200, Height: 600})
	for i := 0; i < 10; i++ {
		fitter.Notify()
	}

	require.Eventually(t, func() bool { return fitter.Fits() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, observed+1, container.observed())
	assert.InDelta(t, 1200, wm.Layout().Width(), 1e-9)

	// Same box: observed again but nothing changes.
	fitter.Notify()
	require.Eventually(t, func() bool { return container.observed() == observed+2 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return fitter.Fits() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestAutoFitter_StopDropsPendingFit(t *testing.T) {
	container := &resizableContainer{box: sashes.Box{Width: 800, Height: 600}}
	wm, _ := newManager(t, threePanes(), func(o *sashes.Options) {
		o.Container = container
	})
	fitter := sashes.NewAutoFitter(wm, 20*time.Millisecond)

	observed := container.observed()
	container.set(sashes.Box{Width: 640, Height: 480})
	fitter.Notify()
	fitter.Stop()
	fitter.Notify()

	assert.Never(t, func() bool { return container.observed() != observed }, 80*time.Millisecond, 10*time.Millisecond)
	assert.InDelta(t, 800, wm.Layout().Width(), 1e-9)
	assert.Zero(t, fitter.Fits())
}
