// Package settlement publishes committed ledger and draw outcomes to a
// best-effort side channel and turns consumed messages into mock receipts.
package settlement

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/metaraffle/backend/pkg/crypto"
	"github.com/metaraffle/backend/pkg/enum"
	"github.com/metaraffle/backend/pkg/pubsub"
	"github.com/metaraffle/backend/pkg/xcontext"
)

type Kind string

var (
	Debit  = enum.New(Kind("debit"))
	Credit = enum.New(Kind("credit"))
	Draw   = enum.New(Kind("draw"))
)

type Message struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	UserID    string    `json:"userId,omitempty"`
	RaffleID  string    `json:"raffleId,omitempty"`
	Amount    uint64    `json:"amount,omitempty"`
	Winners   []string  `json:"winners,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Receipt struct {
	MessageID int64  `json:"messageId"`
	Kind      Kind   `json:"kind"`
	TxHash    string `json:"txHash"`
}

type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

type notifier struct {
	publisher pubsub.Publisher
	topic     string
	node      *snowflake.Node
	wg        sync.WaitGroup
}

func NewNotifier(publisher pubsub.Publisher, topic string, nodeID int64) (*notifier, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &notifier{publisher: publisher, topic: topic, node: node}, nil
}

// Notify publishes msg in the background. A failure is only logged; the
// ledger state has already been committed when this is called.
func (n *notifier) Notify(ctx context.Context, msg Message) {
	msg.ID = n.node.Generate().Int64()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	b, err := json.Marshal(msg)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal settlement message: %v", err)
		return
	}

	// The request context is cancelled once the response is written.
	bgCtx := xcontext.WithLogger(context.Background(), xcontext.Logger(ctx))
	pack := &pubsub.Pack{Key: []byte(strconv.FormatInt(msg.ID, 10)), Msg: b}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.publisher.Publish(bgCtx, n.topic, pack); err != nil {
			xcontext.Logger(bgCtx).Warnf("Cannot publish settlement message %d: %v", msg.ID, err)
		}
	}()
}

// Wait blocks until every pending publication finished.
func (n *notifier) Wait() {
	n.wg.Wait()
}

// Settle derives the mock receipt of a message.
func Settle(msg Message) Receipt {
	return Receipt{
		MessageID: msg.ID,
		Kind:      msg.Kind,
		TxHash:    crypto.HexSHA256([]byte(strconv.FormatInt(msg.ID, 10))),
	}
}

// NewSubscribeHandler returns the handler consuming settlement messages.
// Every receipt is handed to onReceipt.
func NewSubscribeHandler(onReceipt func(context.Context, Receipt)) pubsub.SubscribeHandler {
	return func(ctx context.Context, pack *pubsub.Pack, t time.Time) {
		var msg Message
		if err := json.Unmarshal(pack.Msg, &msg); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unmarshal settlement message: %v", err)
			return
		}

		receipt := Settle(msg)
		xcontext.Logger(ctx).Infof("Settled %s message %d at %s: %s",
			receipt.Kind, receipt.MessageID, t.Format(time.RFC3339), receipt.TxHash)

		if onReceipt != nil {
			onReceipt(ctx, receipt)
		}
	}
}
