// internal/writer/tcp/client_test.go
package tcp

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"
)

func TestClient_RoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	got := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 50)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		got <- buf
		_, _ = conn.Write([]byte("ACK 50\n"))
		time.Sleep(200 * time.Millisecond)
	}()

	c, err := Dial(Config{Endpoint: Scheme + ln.Addr().String(), Timeout: time.Second})
	if err != nil {
		t.Fatalf("Dial err=%v", err)
	}
	defer c.Close()

	payload := bytes.Repeat([]byte{0xAB}, 50)
	if n, err := c.Write(payload); err != nil || n != 50 {
		t.Fatalf("Write n=%d err=%v", n, err)
	}

	select {
	case b := <-got:
		if !bytes.Equal(b, payload) {
			t.Fatalf("peer received %x", b)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("peer did not receive frame")
	}

	// Poll until the reply arrives; each read waits at most the read timeout.
	var reply []byte
	buf := make([]byte, 64)
	deadline := time.Now().Add(2 * time.Second)
	for !bytes.Contains(reply, []byte("\n")) && time.Now().Before(deadline) {
		n, err := c.ReadAvailable(buf)
		if err != nil {
			t.Fatalf("ReadAvailable err=%v", err)
		}
		reply = append(reply, buf[:n]...)
	}
	if string(reply) != "ACK 50\n" {
		t.Fatalf("reply=%q", reply)
	}
}

func TestClient_ReadAvailableNoData(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		<-done
		conn.Close()
	}()

	c, err := Dial(Config{Endpoint: ln.Addr().String(), ReadTimeout: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Dial err=%v", err)
	}
	defer c.Close()

	n, err := c.ReadAvailable(make([]byte, 8))
	if n != 0 || err != nil {
		t.Fatalf("idle read = %d,%v want 0,nil", n, err)
	}
}

func TestDial_Refused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	if _, err := Dial(Config{Endpoint: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected dial error")
	}
}
