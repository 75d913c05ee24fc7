package webtui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// controlMsg is a JSON text frame from the browser. Anything else is keyboard input.
type controlMsg struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

const writeTimeout = 10 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header (non-browser clients) and browser
// requests whose Origin host matches the Host they were sent to.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// session ties one websocket to one editor process.
type session struct {
	conn *websocket.Conn
	pty  *os.File
	cmd  *exec.Cmd
	once sync.Once
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Info("websocket upgrade failed", "err", err)
		return
	}
	sess, err := s.startSession(conn)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte("failed to start editor: "+err.Error()))
		_ = conn.Close()
		return
	}
	pid := sess.cmd.Process.Pid
	s.log.Info("editor session started", "pid", pid, "map", s.cfg.MapRef)
	err = sess.run(r.Context())
	s.log.Info("editor session ended", "pid", pid, "err", err)
}

func (s *Server) startSession(conn *websocket.Conn) (*session, error) {
	exe := strings.TrimSpace(s.cfg.Exe)
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return nil, err
		}
	}
	cmd := exec.Command(exe, s.sessionArgs()...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: 120, Rows: 40})
	if err != nil {
		return nil, err
	}
	return &session{conn: conn, pty: f, cmd: cmd}, nil
}

// sessionArgs are the flags passed to the child editor.
func (s *Server) sessionArgs() []string {
	var args []string
	if dir := strings.TrimSpace(s.cfg.Dir); dir != "" {
		args = append(args, "--dir", dir)
	}
	if ref := strings.TrimSpace(s.cfg.MapRef); ref != "" {
		args = append(args, "--map", ref)
	}
	return append(args, "edit")
}

// run pumps both directions until either side ends. Whichever pump stops first tears the
// session down, which unblocks the other one.
func (ss *session) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer ss.close()
		return pumpPTYToWS(ctx, ss.pty, ss.conn)
	})
	g.Go(func() error {
		defer ss.close()
		return pumpWSToPTY(ctx, ss.conn, ptyFile{ss.pty})
	})
	return g.Wait()
}

func (ss *session) close() {
	ss.once.Do(func() {
		_ = ss.cmd.Process.Kill()
		_ = ss.pty.Close()
		_ = ss.conn.Close()
		_ = ss.cmd.Wait()
	})
}

// pumpPTYToWS streams editor output as binary frames. A clean EOF (the editor quit) ends the
// pump without error.
func pumpPTYToWS(ctx context.Context, out io.Reader, conn *websocket.Conn) error {
	buf := make([]byte, 32*1024)
	for ctx.Err() == nil {
		n, err := out.Read(buf)
		if n > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

// terminal is the input side of a session.
type terminal interface {
	io.Writer
	Resize(cols, rows int) error
}

type ptyFile struct{ *os.File }

func (p ptyFile) Resize(cols, rows int) error {
	return pty.Setsize(p.File, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
}

// pumpWSToPTY forwards keystrokes and applies resize control messages.
func pumpWSToPTY(ctx context.Context, conn *websocket.Conn, term terminal) error {
	for ctx.Err() == nil {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			continue
		}
		if mt == websocket.TextMessage && data[0] == '{' {
			var m controlMsg
			if json.Unmarshal(data, &m) == nil && m.Type == "resize" && m.Cols > 0 && m.Rows > 0 {
				_ = term.Resize(m.Cols, m.Rows)
			}
			continue
		}
		if _, err := term.Write(data); err != nil {
			return err
		}
	}
	return ctx.Err()
}
