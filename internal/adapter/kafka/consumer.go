package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
	"github.com/likmaa/ejs-market/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

// A consumer is used for composition.
//
// Fetching records from kafka broker and closing underlying [kgo.Client].

type consumerParent interface {
	processFetches(context.Context, kgo.Fetches) error
}

type consumer struct {
	opPrefix      string
	parent        consumerParent
	cl            ConsumerClient
	slowDownTimer *time.Timer
}

func (c consumer) run(ctx context.Context) {
	const op = "run"
	log := slog.With("op", makeOp(c.opPrefix, op))

	log.Info("running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				log.Error("failed to consume", "err", err)
				c.slowDown()
			}
		}
	}
}

func (c consumer) consume(ctx context.Context) error {
	const op = "consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	if fetches.Empty() {
		return nil
	}

	err = c.parent.processFetches(ctx, fetches)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.commit(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	err := c.handleFetchesErrs(fetches)
	if err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	return fetches, nil
}

func (c consumer) handleFetchesErrs(fetches kgo.Fetches) error {
	var errsMessages []string
	fetches.EachError(func(t string, p int32, err error) {
		if err != nil {
			errMsg := fmt.Sprintf(
				"topic %q partition %d: %q", t, p, err,
			)
			errsMessages = append(errsMessages, errMsg)
		}
	})

	if len(errsMessages) != 0 {
		return errors.New(strings.Join(errsMessages, "; "))
	}
	return nil
}

func (c consumer) slowDown() {
	c.slowDownTimer.Reset(1 * time.Second)
	<-c.slowDownTimer.C
}

func (c consumer) commit(ctx context.Context) error {
	const op = "commit"

	err := ctx.Err()
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.cl.CommitUncommittedOffsets(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) close() {
	const op = "close"
	log := slog.With("op", makeOp(c.opPrefix, op))

	c.slowDownTimer.Stop()

	log.Info("closing consumer...")
	c.cl.Close()
	log.Info("consumer is closed")
}

// An OrdersArchiveConsumer consumes placed orders
// then hands them to the archive sink.
type OrdersArchiveConsumer struct {
	opPrefix string
	consumer consumer
	archiver port.OrdersArchiver
	decoder  Decoder
}

func NewOrdersArchiveConsumer(
	opts ...ConsumerOpt,
) (oc OrdersArchiveConsumer, err error) {
	const op = "NewOrdersArchiveConsumer"

	var options consumerOpts
	if err := options.apply(opts...); err != nil {
		return oc, opErr(err, op)
	}

	opPrefix := "OrdersArchiveConsumer"

	oc.opPrefix = opPrefix
	oc.archiver = options.archiver
	oc.decoder = options.decoder

	oc.consumer = consumer{
		opPrefix:      opPrefix,
		parent:        oc,
		cl:            options.cl,
		slowDownTimer: time.NewTimer(0),
	}

	return oc, nil
}

func (c OrdersArchiveConsumer) Run(ctx context.Context) {
	c.consumer.run(ctx)
}

func (c OrdersArchiveConsumer) Close() {
	c.consumer.close()
}

func (c OrdersArchiveConsumer) processFetches(
	ctx context.Context, fetches kgo.Fetches,
) error {
	const op = "processFetches"

	values := c.toDomain(fetches)
	if len(values) == 0 {
		return nil
	}

	err := c.archiver.ArchiveOrders(ctx, values)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c OrdersArchiveConsumer) toDomain(
	fetches kgo.Fetches,
) (vs []domain.Order) {
	const op = "toDomain"
	log := slog.With("op", makeOp(c.opPrefix, op))

	fetches.EachRecord(func(r *kgo.Record) {
		v, err := c.decodeRecValue(r)
		if err != nil {
			log.Error(
				"failed to decode value",
				"err", opErr(err, c.opPrefix, op),
			)
			return
		}
		vs = append(vs, v)
	})
	return vs
}

func (c OrdersArchiveConsumer) decodeRecValue(
	r *kgo.Record,
) (domain.Order, error) {
	var s schema.OrderPlacedV1
	err := c.decoder.Decode(r.Value, &s)
	if err != nil {
		return domain.Order{}, err
	}
	v := schemaV1ToOrder(s)
	return v, nil
}
