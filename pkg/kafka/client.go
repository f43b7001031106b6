// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"

	"chatbot-go/internal/config"
	"chatbot-go/internal/model"
	"chatbot-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// Producer 向 Kafka 发布已完成的问答事件，供下游分析消费。
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 初始化 Kafka 生产者。
func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka 生产者初始化成功")
	return &Producer{writer: w}
}

// PublishChatEvent 发送一条问答交换事件到 Kafka。
// 发布失败不影响请求主链路，由调用方决定是否仅记录日志。
func (p *Producer) PublishChatEvent(ctx context.Context, entry model.ChatEntry) error {
	eventBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(entry.Username),
			Value: eventBytes,
		},
	)
}

// Close 关闭底层的 Kafka writer。
func (p *Producer) Close() error {
	return p.writer.Close()
}
