package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/validation"
	"github.com/bnema/sashes/internal/infrastructure/layoutfile"
	"github.com/bnema/sashes/internal/logging"
	"github.com/bnema/sashes/pkg/sashes"
)

// dropInset is how far inside the target edge a scripted drop lands, as a
// fraction of the target's extent.
const dropInset = 0.05

// Replayer applies scripted steps to a window manager.
type Replayer struct {
	wm    *sashes.WindowManager
	sleep func(time.Duration)
}

// NewReplayer creates a replayer. A nil sleep uses time.Sleep.
func NewReplayer(wm *sashes.WindowManager, sleep func(time.Duration)) *Replayer {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Replayer{wm: wm, sleep: sleep}
}

// Run applies every step in order and flushes pending resize events at the
// end. It stops at the first failing step.
func (r *Replayer) Run(ctx context.Context, script *layoutfile.Script) error {
	log := logging.FromContext(ctx)

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug().Int("step", i).Str("action", string(step.Action)).Msg("replaying step")

		if err := r.Apply(step); err != nil {
			return fmt.Errorf("steps[%d] %s: %w", i, step.Action, err)
		}
	}

	r.wm.FlushResizes()
	log.Info().Int("steps", len(script.Steps)).Msg("script replayed")
	return nil
}

// Apply runs one step.
func (r *Replayer) Apply(step layoutfile.Step) error {
	switch step.Action {
	case layoutfile.ActionAdd:
		position, err := validation.ParseEdge(step.Position)
		if err != nil {
			return err
		}
		_, err = r.wm.AddPane(step.Target, sashes.AddPaneOptions{
			Position: position,
			Size:     step.Size,
			ID:       step.Pane,
			Title:    step.Title,
		})
		return err
	case layoutfile.ActionRemove:
		return r.wm.RemovePane(step.Pane)
	case layoutfile.ActionSwap:
		return r.wm.SwapPanesByID(step.Pane, step.Target)
	case layoutfile.ActionMinimize:
		return r.wm.Minimize(step.Pane)
	case layoutfile.ActionMaximize:
		return r.wm.Maximize(step.Pane)
	case layoutfile.ActionRestore:
		return r.wm.Restore(step.Pane)
	case layoutfile.ActionFocus:
		return r.wm.Focus(step.Pane)
	case layoutfile.ActionBlur:
		return r.wm.Blur()
	case layoutfile.ActionRename:
		return r.wm.Rename(step.Pane, step.Title)
	case layoutfile.ActionResize:
		return r.resize(step.Split, step.Delta)
	case layoutfile.ActionDrop:
		return r.drop(step)
	case layoutfile.ActionFit:
		if step.Width == 0 && step.Height == 0 {
			_, err := r.wm.Fit()
			return err
		}
		_, err := r.wm.FitBox(sashes.Box{Width: step.Width, Height: step.Height})
		return err
	case layoutfile.ActionWait:
		d, err := step.Wait()
		if err != nil {
			return err
		}
		r.sleep(d)
		return nil
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
}

// resize drags the muntin of split by delta along the split axis.
func (r *Replayer) resize(split string, delta float64) error {
	if err := r.wm.BeginResize(split, sashes.Point{}); err != nil {
		return err
	}
	defer r.wm.EndResize()

	_, err := r.wm.DragResize(sashes.Point{X: delta, Y: delta})
	return err
}

func (r *Replayer) drop(step layoutfile.Step) error {
	zone, err := validation.ParsePosition(step.Zone)
	if err != nil {
		return err
	}
	target := r.wm.Layout().Find(step.Target)
	if target == nil {
		return entity.NotFound(entity.ErrSashNotFound, step.Target)
	}

	result, err := r.wm.DropPane(step.Pane, step.Target, zonePoint(target.Rect(), zone))
	if err != nil {
		return err
	}
	if result.Zone != zone {
		return fmt.Errorf("drop landed in %s, want %s", result.Zone, zone)
	}
	return nil
}

// zonePoint picks a pointer position inside zone of rect.
func zonePoint(rect sashes.Rect, zone sashes.Position) sashes.Point {
	center := rect.Center()
	switch zone {
	case entity.PositionLeft:
		return sashes.Point{X: rect.Left + rect.Width*dropInset, Y: center.Y}
	case entity.PositionRight:
		return sashes.Point{X: rect.Right() - rect.Width*dropInset, Y: center.Y}
	case entity.PositionTop:
		return sashes.Point{X: center.X, Y: rect.Top + rect.Height*dropInset}
	case entity.PositionBottom:
		return sashes.Point{X: center.X, Y: rect.Bottom() - rect.Height*dropInset}
	case entity.PositionOutside:
		return sashes.Point{X: rect.Left - 1, Y: rect.Top - 1}
	default:
		return center
	}
}
