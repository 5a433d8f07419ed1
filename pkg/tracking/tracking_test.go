package tracking

import (
	"errors"
	"net/http/httptest"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/slask-table/pkg/messaging"
	"github.com/matst80/slask-table/pkg/types"
)

func TestNewTableView(t *testing.T) {
	state, err := types.TableStateFromQueryString("q=lamp&page=2&sort=price:desc&str=category:Home")
	require.NoError(t, err)
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Referer", "https://shop.example/")

	view := NewTableView(state, 12, r)
	assert.Equal(t, "lamp", view.Query)
	assert.Equal(t, 2, view.Page)
	assert.Equal(t, 12, view.NumberOfResults)
	assert.Equal(t, "https://shop.example/", view.Referer)
	require.Len(t, view.StringFilter, 1)

	view.StringFilter[0].Value[0] = "changed"
	assert.Equal(t, "Home", state.StringFilter[0].Value[0])
}

func TestEventEncoding(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Real-Ip", "10.0.0.1")
	r.Header.Set("User-Agent", "test")
	session := newSession(&BaseEvent{SessionId: "abc", Event: EventSession, Context: "table"}, r)

	data, err := messaging.Encode(session)
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"abc","context":"table","event":0,"user_agent":"test","ip":"10.0.0.1"}`, string(data))
}

type failingConnection struct {
	closed bool
}

func (c *failingConnection) Channel() (*amqp.Channel, error) {
	return nil, errors.New("channel refused")
}

func (c *failingConnection) Close() error {
	c.closed = true
	return nil
}

func TestDefineTopicsClosesConnectionOnError(t *testing.T) {
	conn := &failingConnection{}
	assert.Error(t, defineTopics(conn, "table"))
	assert.True(t, conn.closed)
}
