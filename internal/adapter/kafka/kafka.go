package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
	"github.com/likmaa/ejs-market/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var ErrTooFewOpts = errors.New("too few options")

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ConsumerOpt func(*consumerOpts) error

type consumerOpts struct {
	cl       ConsumerClient
	decoder  Decoder
	archiver port.OrdersArchiver
}

func (co *consumerOpts) apply(opts ...ConsumerOpt) error {
	for _, opt := range opts {
		if err := opt(co); err != nil {
			return err
		}
	}
	return nil
}

func ConsumerClientOpt(
	seedBrokers []string, topic, group string,
) ConsumerOpt {
	return func(co *consumerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.ConsumeTopics(topic),
			kgo.ConsumerGroup(group),
			kgo.DisableAutoCommit(),
		)
		if err != nil {
			return err
		}
		co.cl = cl
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(co *consumerOpts) error {
		if decoder == nil {
			return errors.New("decoder is nil")
		}
		co.decoder = decoder
		return nil
	}
}

func ConsumerArchiverOpt(a port.OrdersArchiver) ConsumerOpt {
	return func(co *consumerOpts) error {
		if a == nil {
			return errors.New("orders archiver is nil")
		}
		co.archiver = a
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(v domain.Order) (s schema.OrderPlacedV1) {
	s.OrderID = v.ID
	s.UserID = v.UserID
	s.Status = string(v.Status)
	s.TotalHT = v.TotalHT
	s.VATAmount = v.VATAmount
	s.TotalTTC = v.TotalTTC
	s.ShippingCost = v.ShippingCost
	s.PaymentMethod = v.PaymentMethod
	s.CreatedAt = v.CreatedAt.UnixMilli()

	s.Shipping.FirstName = v.Shipping.FirstName
	s.Shipping.LastName = v.Shipping.LastName
	s.Shipping.Address = v.Shipping.Address
	s.Shipping.City = v.Shipping.City
	s.Shipping.PostalCode = v.Shipping.PostalCode
	s.Shipping.Country = v.Shipping.Country
	s.Shipping.Phone = v.Shipping.Phone

	s.Lines = make([]schema.OrderLineV1, len(v.Lines))
	for i := range v.Lines {
		s.Lines[i].ProductID = v.Lines[i].ProductID
		s.Lines[i].SKU = v.Lines[i].SKU
		s.Lines[i].Name = v.Lines[i].Name
		s.Lines[i].PriceHT = v.Lines[i].PriceHT
		s.Lines[i].VATRate = v.Lines[i].VATRate
		s.Lines[i].Quantity = v.Lines[i].Quantity
	}
	return
}

func schemaV1ToOrder(s schema.OrderPlacedV1) (v domain.Order) {
	v.ID = s.OrderID
	v.UserID = s.UserID
	v.Status = domain.OrderStatus(s.Status)
	v.TotalHT = s.TotalHT
	v.VATAmount = s.VATAmount
	v.TotalTTC = s.TotalTTC
	v.ShippingCost = s.ShippingCost
	v.PaymentMethod = s.PaymentMethod
	v.CreatedAt = time.UnixMilli(s.CreatedAt).UTC()

	v.Shipping.FirstName = s.Shipping.FirstName
	v.Shipping.LastName = s.Shipping.LastName
	v.Shipping.Address = s.Shipping.Address
	v.Shipping.City = s.Shipping.City
	v.Shipping.PostalCode = s.Shipping.PostalCode
	v.Shipping.Country = s.Shipping.Country
	v.Shipping.Phone = s.Shipping.Phone

	v.Lines = make([]domain.OrderLine, len(s.Lines))
	for i := range s.Lines {
		v.Lines[i].ProductID = s.Lines[i].ProductID
		v.Lines[i].SKU = s.Lines[i].SKU
		v.Lines[i].Name = s.Lines[i].Name
		v.Lines[i].PriceHT = s.Lines[i].PriceHT
		v.Lines[i].VATRate = s.Lines[i].VATRate
		v.Lines[i].Quantity = s.Lines[i].Quantity
	}
	return
}
