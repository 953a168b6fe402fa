package telnet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tripletriad-backend/internal/apperror"
	"github.com/rocketscienceinc/tripletriad-backend/internal/entity"
	"github.com/rocketscienceinc/tripletriad-backend/internal/hub"
	"github.com/rocketscienceinc/tripletriad-backend/internal/tripletriad"
)

const (
	Transport = "telnet"

	writeWait   = 10 * time.Second
	maxLineSize = 1024

	promptName = "By what name are you known? "
)

type gateway interface {
	Open(ctx context.Context, name string, conn hub.Conn, transport string) (*entity.Player, error)
	Execute(ctx context.Context, player *entity.Player, line string)
	Close(ctx context.Context, player *entity.Player, conn hub.Conn, transport string)
}

// Server is a line-oriented listener: the first line names the character, every later line is a command.
type Server struct {
	logger  *slog.Logger
	gateway gateway

	wg sync.WaitGroup
}

func New(logger *slog.Logger, gateway gateway) *Server {
	return &Server{
		logger:  logger.With("component", "telnet"),
		gateway: gateway,
	}
}

// Start - listens on port until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return that.Serve(ctx, listener)
}

// Serve - accepts connections on listener until ctx is done.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve")

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	log.Info("listening", "address", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				that.wg.Wait()
				return nil
			}

			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("listener closed: %w", err)
			}

			log.Error("error accepting connection", "error", err)
			continue
		}

		that.wg.Add(1)
		go func() {
			defer that.wg.Done()
			that.handleConnection(ctx, conn)
		}()
	}
}

func (that *Server) handleConnection(ctx context.Context, conn net.Conn) {
	log := that.logger.With("method", "handleConnection", "remote_addr", conn.RemoteAddr().String())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)

	if err := writeLine(conn, promptName, false); err != nil {
		return
	}

	if !scanner.Scan() {
		return
	}

	outbox := hub.NewOutbox(hub.DefaultOutboxSize)
	defer outbox.Close()

	player, err := that.gateway.Open(ctx, strings.TrimSpace(scanner.Text()), outbox, Transport)
	if err != nil {
		log.Info("connection refused", "error", err)
		_ = writeLine(conn, refusal(err), true)
		return
	}

	defer that.gateway.Close(context.WithoutCancel(ctx), player, outbox, Transport)

	go that.writeLoop(conn, outbox)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "quit") {
			_ = writeLine(conn, "Goodbye.", true)
			return
		}

		that.gateway.Execute(ctx, player, line)
	}

	if err = scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Debug("read failed", "error", err)
	}
}

// writeLoop pumps notices from the outbox to the connection.
func (that *Server) writeLoop(conn net.Conn, outbox *hub.Outbox) {
	for {
		select {
		case notice := <-outbox.Notices():
			if err := writeNotice(conn, notice); err != nil {
				that.logger.Debug("write failed", "method", "writeLoop", "error", err)
				_ = conn.Close()
				return
			}
		case <-outbox.Done():
			return
		}
	}
}

func writeNotice(w net.Conn, notice tripletriad.Notice) error {
	if notice.View != nil {
		if err := writeLine(w, tripletriad.Render(notice.View), false); err != nil {
			return err
		}
	}

	if notice.Text != "" {
		return writeLine(w, notice.Text, true)
	}

	return nil
}

func writeLine(w net.Conn, text string, newline bool) error {
	_ = w.SetWriteDeadline(time.Now().Add(writeWait))

	text = strings.ReplaceAll(text, "\n", "\r\n")
	if newline {
		text += "\r\n"
	}

	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}

	return nil
}

func refusal(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidName):
		return "That name is not available. Names are 2 to 20 letters, digits, '-' or '_'."
	case errors.Is(err, apperror.ErrAlreadyConnected):
		return "That character is already connected."
	default:
		return "Unable to connect, please try again later."
	}
}
