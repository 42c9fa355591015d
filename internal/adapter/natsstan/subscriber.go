package natsstan

import (
	"context"
	"fmt"
	"time"

	stan "github.com/nats-io/stan.go"
	"github.com/rs/zerolog"

	"github.com/example/dme-recommend-service/internal/domain"
)

// Subscriber consumes order messages from NATS Streaming and hands them to
// the pipeline handler.
type Subscriber struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string
	Durable   string
	Log       zerolog.Logger
}

func (s *Subscriber) Subscribe(ctx context.Context, handler func(ctx context.Context, raw []byte) error) error {
	clientID := s.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("dme-svc-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(s.ClusterID, clientID, stan.NatsURL(s.URL))
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		sc.Close()
	}()
	_, err = sc.QueueSubscribe(s.Subject, "dme-workers", func(m *stan.Msg) {
		hCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := handler(hCtx, m.Data); err != nil {
			// no ack, let the message redeliver
			s.Log.Error().Err(err).Msg("order handler failed")
			return
		}
		if err := m.Ack(); err != nil {
			s.Log.Error().Err(err).Msg("ack failed")
		}
	}, stan.DurableName(s.Durable), stan.SetManualAckMode(), stan.AckWait(90*time.Second), stan.DeliverAllAvailable())
	return err
}

var _ domain.MessageSubscriber = (*Subscriber)(nil)
