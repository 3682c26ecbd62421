package display

import (
	"context"
	"image"
	"io"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/podium/pkg/errors"
)

// X11Enumerator lists monitors through the RandR extension.
type X11Enumerator struct {
	conn   *xgb.Conn
	root   xproto.Window
	logger *log.Logger

	mu sync.Mutex
}

// NewX11Enumerator connects to the X server named by $DISPLAY.
func NewX11Enumerator(logger *log.Logger) (*X11Enumerator, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeDisplayUnavailable, err, "connect to X server")
	}
	if err := randr.Init(conn); err != nil {
		conn.Close()
		return nil, perrors.Wrap(perrors.ErrCodeDisplayUnavailable, err, "RandR extension unavailable")
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &X11Enumerator{conn: conn, root: root, logger: logger}, nil
}

// Close disconnects from the X server.
func (e *X11Enumerator) Close() error {
	e.conn.Close()
	return nil
}

// Displays implements Enumerator. Outputs that are disconnected or have no
// CRTC are skipped; mirrored outputs sharing a CRTC are listed once.
func (e *X11Enumerator) Displays(ctx context.Context) ([]Descriptor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := randr.GetScreenResourcesCurrent(e.conn, e.root).Reply()
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeDisplayUnavailable, err, "query screen resources")
	}

	var ds []Descriptor
	seen := make(map[randr.Crtc]bool)
	for _, out := range res.Outputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := randr.GetOutputInfo(e.conn, out, res.ConfigTimestamp).Reply()
		if err != nil {
			e.logger.Debug("skip output", "output", out, "err", err)
			continue
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 || seen[info.Crtc] {
			continue
		}
		crtc, err := randr.GetCrtcInfo(e.conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			e.logger.Debug("skip crtc", "crtc", info.Crtc, "err", err)
			continue
		}
		if crtc.Width == 0 || crtc.Height == 0 {
			continue
		}
		seen[info.Crtc] = true
		r := image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height))
		ds = append(ds, Descriptor{Name: string(info.Name), Geometry: r, Available: r})
	}
	sortDescriptors(ds)
	return ds, nil
}

// Watch implements Enumerator. RandR screen and output notifications are
// translated into added and removed events by diffing enumerations.
func (e *X11Enumerator) Watch(ctx context.Context) (<-chan Event, error) {
	mask := randr.NotifyMaskScreenChange | randr.NotifyMaskOutputChange | randr.NotifyMaskCrtcChange
	if err := randr.SelectInputChecked(e.conn, e.root, uint16(mask)).Check(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeDisplayUnavailable, err, "subscribe to RandR events")
	}
	before, err := e.Displays(ctx)
	if err != nil {
		return nil, err
	}

	raw := make(chan struct{}, 1)
	go func() {
		for {
			ev, xerr := e.conn.WaitForEvent()
			if ev == nil && xerr == nil {
				close(raw)
				return
			}
			if xerr != nil {
				e.logger.Debug("x11 error", "err", xerr)
				continue
			}
			switch ev.(type) {
			case randr.ScreenChangeNotifyEvent, randr.NotifyEvent:
				select {
				case raw <- struct{}{}:
				default:
				}
			}
		}
	}()

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-raw:
				if !ok {
					return
				}
				after, err := e.Displays(ctx)
				if err != nil {
					e.logger.Warn("re-enumerate displays", "err", err)
					continue
				}
				for _, ev := range diff(before, after) {
					select {
					case out <- ev:
					case <-ctx.Done():
						return
					}
				}
				before = after
			}
		}
	}()
	return out, nil
}
