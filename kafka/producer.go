package kafka

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"github.com/IBM/sarama"

	"hotel-server/services"
)

// Producer publishes booking events to a single topic, keyed by room id so all
// events of one room land on the same partition in order.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(broker, topic string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer([]string{broker}, config)
	if err != nil {
		return nil, err
	}

	log.Printf("Kafka producer initialized for topic %s", topic)
	return &Producer{producer: producer, topic: topic}, nil
}

func newProducer(p sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: p, topic: topic}
}

func (p *Producer) Publish(_ context.Context, event services.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(uint64(event.RoomID), 10)),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.Type)},
		},
	}

	_, _, err = p.producer.SendMessage(msg)
	return err
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
