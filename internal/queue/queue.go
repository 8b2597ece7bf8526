package queue

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// RunTopic carries queued batch runs from the API to the worker.
const RunTopic = "campaign_runs"

// RunJob is the payload published for one queued run.
type RunJob struct {
	RunID int `json:"run_id"`
}

// Publisher is the half of the queue the API needs.
type Publisher interface {
	Publish(topic string, payload any) error
}

// Queue interface
type Queue interface {
	Publisher
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry, used when no broker is
// configured (embedded mode).
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// RunExecutor is what the subscriber drives for each queued run.
type RunExecutor interface {
	Execute(ctx context.Context, runID int) error
}

// StartRunSubscriber wires the embedded-mode queue to the run executor.
// Execution errors are already recorded on the run row, so jobs are not
// retried here.
func StartRunSubscriber(q Queue, executor RunExecutor) {
	go func() {
		err := q.Subscribe(RunTopic, func(payload any) error {
			job, ok := payload.(RunJob)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected RunJob")
				return nil
			}

			log.Println("📩 Processing queued run ID:", job.RunID)

			if err := executor.Execute(context.Background(), job.RunID); err != nil {
				log.Println("⚠️ Run failed:", err)
				return nil // run is marked failed in the DB, do not retry
			}

			log.Println("✅ Run completed:", job.RunID)
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for", RunTopic, ":", err)
		}
	}()
}
