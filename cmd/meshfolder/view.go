package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/meshfolder/pkg/math3d"
	"github.com/taigrr/meshfolder/pkg/meshfolder"
	"github.com/taigrr/meshfolder/pkg/models"
	"github.com/taigrr/meshfolder/pkg/render"
)

// viewAction is a key press translated for the frame loop.
type viewAction int

const (
	actionQuit viewAction = iota
	actionUp
	actionDown
	actionLeft
	actionRight
	actionNext
	actionPrev
	actionReset
	actionZoomIn
	actionZoomOut
)

// nudge is the angular velocity one key press adds, in radians per frame.
const nudge = 0.03

// viewer holds the interactive preview state. Only the frame loop touches it.
type viewer struct {
	idx *meshfolder.Index
	log *zap.Logger

	cur    int
	mesh   *models.Mesh
	fit    math3d.Mat4
	status string

	table  *render.Turntable
	camera *render.Camera
	fb     *render.Framebuffer
	bg     render.Color
}

func (a *app) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <index>",
		Short: "Interactive terminal wireframe preview",
		Long: `Interactive terminal wireframe preview.

Controls:
  w/s, up/down     Tilt
  a/d, left/right  Spin
  n/p              Next / previous record
  +/-              Zoom
  r                Reset orientation
  esc, q, ctrl+c   Quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			bg, err := parseColor(a.cfg.View.Background)
			if err != nil {
				return err
			}
			idx, err := a.openIndex()
			if err != nil {
				return err
			}
			if _, err := idx.Entry(i); err != nil {
				return err
			}

			v := &viewer{
				idx:    idx,
				log:    a.log,
				table:  render.NewTurntable(a.cfg.View.FPS),
				camera: render.NewCamera(4),
				bg:     bg,
			}
			v.load(i)
			return v.run(cmd.Context(), a.cfg.View.FPS)
		},
	}
}

// load switches to record i. A failed load keeps the previous mesh on screen
// and reports the error in the status line.
func (v *viewer) load(i int) {
	n := v.idx.Len()
	i = ((i % n) + n) % n

	rec, err := v.idx.Get(i)
	if err != nil {
		v.log.Warn("Preview load failed", zap.Int("index", i), zap.Error(err))
		v.status = fmt.Sprintf("[%d/%d] %v", i, n, err)
		v.cur = i
		return
	}

	v.cur = i
	v.mesh = recordMesh(rec)
	v.fit = math3d.Identity()
	if box, ok := v.mesh.Bounds(); ok {
		v.fit = render.FitTransform(box)
	}
	v.table.Reset()
	v.status = fmt.Sprintf("[%d/%d] %s (%s) %d verts %d faces",
		i, n, v.mesh.Name, rec.Kind, v.mesh.VertexCount(), v.mesh.FaceCount())
}

func (v *viewer) resize(cols, rows int) {
	w, h := render.TerminalSize(cols, rows)
	v.fb = render.NewFramebuffer(w, h)
	v.camera.AspectRatio = float64(w) / float64(h)
}

func (v *viewer) apply(act viewAction) bool {
	switch act {
	case actionQuit:
		return false
	case actionUp:
		v.table.Nudge(-nudge, 0)
	case actionDown:
		v.table.Nudge(nudge, 0)
	case actionLeft:
		v.table.Nudge(0, -nudge)
	case actionRight:
		v.table.Nudge(0, nudge)
	case actionNext:
		v.load(v.cur + 1)
	case actionPrev:
		v.load(v.cur - 1)
	case actionReset:
		v.table.Reset()
	case actionZoomIn:
		v.camera.SetDistance(max(v.camera.Distance()*0.9, 1.5))
	case actionZoomOut:
		v.camera.SetDistance(min(v.camera.Distance()*1.1, 20))
	}
	return true
}

func (v *viewer) draw(scr uv.Screen, cols, rows int) {
	v.fb.Clear(v.bg)
	if v.mesh != nil {
		model := v.table.Transform().Mul(v.fit)
		render.NewWireframe(v.camera, v.fb).DrawMesh(v.mesh, model, render.RGB(0, 255, 128))
	}
	v.fb.Draw(scr, uv.Rect(0, 0, cols, rows))

	// Status line over the first row.
	x := 0
	for _, r := range v.status {
		if x >= cols {
			break
		}
		scr.SetCell(x, 0, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: render.RGB(255, 255, 255), Bg: v.bg},
		})
		x++
	}
}

func keyAction(ev uv.KeyPressEvent) (viewAction, bool) {
	switch {
	case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
		return actionQuit, true
	case ev.MatchString("w", "up"):
		return actionUp, true
	case ev.MatchString("s", "down"):
		return actionDown, true
	case ev.MatchString("a", "left"):
		return actionLeft, true
	case ev.MatchString("d", "right"):
		return actionRight, true
	case ev.MatchString("n", "space"):
		return actionNext, true
	case ev.MatchString("p"):
		return actionPrev, true
	case ev.MatchString("r"):
		return actionReset, true
	case ev.MatchString("+", "="):
		return actionZoomIn, true
	case ev.MatchString("-", "_"):
		return actionZoomOut, true
	}
	return 0, false
}

type sizeMsg struct{ cols, rows int }

// offerSize replaces any size still waiting in ch with s. ch must have a
// buffer of one and a single sender.
func offerSize(ch chan sizeMsg, s sizeMsg) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}

func (v *viewer) run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 30
	}

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	v.resize(cols, rows)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	actions := make(chan viewAction, 16)
	sizes := make(chan sizeMsg, 1)

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				offerSize(sizes, sizeMsg{ev.Width, ev.Height})
			case uv.KeyPressEvent:
				if act, ok := keyAction(ev); ok {
					select {
					case actions <- act:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-sizes:
			cols, rows = s.cols, s.rows
			term.Erase()
			term.Resize(cols, rows)
			v.resize(cols, rows)
		case act := <-actions:
			if !v.apply(act) {
				return nil
			}
		case <-ticker.C:
			v.table.Update()
			v.draw(term, cols, rows)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
