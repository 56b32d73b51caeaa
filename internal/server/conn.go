package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var errMalformed = errors.New("malformed message")

// client is one websocket connection. Writes are serialized; reads happen
// only on the connection's own goroutine.
type client struct {
	id        string
	conn      *websocket.Conn
	sendMutex sync.Mutex
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{id: id, conn: conn}
}

func (c *client) Send(v any) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// ReadRequest reads the next message. A message that is not valid JSON
// yields an error wrapping errMalformed; the connection stays usable.
func (c *client) ReadRequest() (Request, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return Request{}, err
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return req, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}

func (c *client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
