// Package antivirus scans uploaded files with a clamd daemon before they
// are parsed or stored.
package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ErrInfected is returned by Scan when clamd reports a signature match.
var ErrInfected = errors.New("antivirus: file is infected")

// Scanner checks file content for malware. A non-nil error other than
// ErrInfected means the scan could not be completed.
type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) (Result, error)
}

type Result struct {
	Infected   bool
	ThreatName string
}

// ClamAV talks to clamd over TCP ("host:3310") or a unix socket path.
type ClamAV struct {
	network string
	address string
	timeout time.Duration
}

var _ Scanner = (*ClamAV)(nil)

func NewClamAV(address string, timeout time.Duration) *ClamAV {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	network := "tcp"
	if strings.HasPrefix(address, "/") {
		network = "unix"
	}
	return &ClamAV{network: network, address: address, timeout: timeout}
}

func (c *ClamAV) dial(ctx context.Context) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, c.network, c.address)
	if err != nil {
		return nil, fmt.Errorf("antivirus: dial clamd: %w", err)
	}
	deadline := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Ping reports whether clamd answers PONG.
func (c *ClamAV) Ping(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return fmt.Errorf("antivirus: ping: %w", err)
	}
	reply, err := readReply(conn)
	if err != nil {
		return err
	}
	if reply != "PONG" {
		return fmt.Errorf("antivirus: unexpected ping reply %q", reply)
	}
	return nil
}

// Scan streams data with the INSTREAM command. The whole file goes in one
// chunk; uploads are capped well below clamd's StreamMaxLength.
func (c *ClamAV) Scan(ctx context.Context, filename string, data []byte) (Result, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return Result{}, err
	}
	defer conn.Close()

	var buf bytes.Buffer
	buf.WriteString("zINSTREAM\x00")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(data)))
	buf.Write(data)
	_ = binary.Write(&buf, binary.BigEndian, uint32(0))

	if _, err := conn.Write(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("antivirus: send %s: %w", filename, err)
	}

	reply, err := readReply(conn)
	if err != nil {
		return Result{}, err
	}
	return parseReply(reply)
}

func readReply(conn net.Conn) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(conn, 4096))
	if err != nil && len(raw) == 0 {
		return "", fmt.Errorf("antivirus: read reply: %w", err)
	}
	return strings.TrimSpace(strings.TrimRight(string(raw), "\x00")), nil
}

// parseReply reads "stream: OK", "stream: <name> FOUND" or "... ERROR".
func parseReply(reply string) (Result, error) {
	body := reply
	if _, after, ok := strings.Cut(reply, ":"); ok {
		body = strings.TrimSpace(after)
	}
	switch {
	case body == "OK":
		return Result{}, nil
	case strings.HasSuffix(body, " FOUND"):
		return Result{Infected: true, ThreatName: strings.TrimSuffix(body, " FOUND")}, ErrInfected
	case strings.HasSuffix(body, " ERROR"):
		return Result{}, fmt.Errorf("antivirus: clamd error: %s", strings.TrimSuffix(body, " ERROR"))
	default:
		return Result{}, fmt.Errorf("antivirus: unexpected reply %q", reply)
	}
}
