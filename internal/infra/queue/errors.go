package queue

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к брокеру
	ErrConnect = errors.New("queue.publisher: failed to connect to broker")

	// ErrDeclareQueue возвращается при ошибке объявления очереди
	ErrDeclareQueue = errors.New("queue.publisher: failed to declare queue")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("queue.publisher: failed to publish message")
)
