package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const flushTimeout = 5 * time.Second

// runFunc executes one write statement against the graph.
type runFunc func(ctx context.Context, cypher string, params map[string]any) error

// Neo4jMirror replicates collection events into Neo4j.
// The graph is write-only from the tracker's point of view: nothing is read
// back, so every process still starts with an empty collection.
type Neo4jMirror struct {
	session uuid.UUID
	queue   chan Event
	run     runFunc
	logger  *log.Logger
	stopped atomic.Bool
}

// NewNeo4jMirror creates a mirror that writes through driver.
// buffer bounds the number of events waiting to be written.
func NewNeo4jMirror(driver neo4j.DriverWithContext, database string, buffer int, logger *log.Logger) *Neo4jMirror {
	run := func(ctx context.Context, cypher string, params map[string]any) error {
		session := driver.NewSession(ctx, neo4j.SessionConfig{
			AccessMode:   neo4j.AccessModeWrite,
			DatabaseName: database,
		})
		defer session.Close(ctx)

		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			_, err := tx.Run(ctx, cypher, params)
			return nil, err
		})
		return err
	}
	return newMirror(run, buffer, logger)
}

func newMirror(run runFunc, buffer int, logger *log.Logger) *Neo4jMirror {
	if buffer < 1 {
		buffer = 1
	}
	return &Neo4jMirror{
		session: uuid.New(),
		queue:   make(chan Event, buffer),
		run:     run,
		logger:  logger,
	}
}

// SessionID identifies this process's tasks in the graph.
func (m *Neo4jMirror) SessionID() uuid.UUID {
	return m.session
}

// TaskEvent queues e for writing. When the queue is full the event is dropped.
// Once Run has returned events are ignored.
func (m *Neo4jMirror) TaskEvent(e Event) {
	if m.stopped.Load() {
		return
	}
	select {
	case m.queue <- e:
	default:
		m.logger.Warn("neo4j mirror queue full, dropping event", "kind", e.Kind, "task_id", e.Task.ID)
	}
}

// Run writes queued events until ctx is done, then flushes what is left
// with a short deadline of its own. The mirror stops accepting events when
// Run returns, including when the session node cannot be created.
func (m *Neo4jMirror) Run(ctx context.Context) error {
	defer m.stopped.Store(true)
	if err := m.run(ctx, "MERGE (s:Session {id: $session})", map[string]any{"session": m.session.String()}); err != nil {
		return err
	}
	for {
		select {
		case e := <-m.queue:
			m.write(ctx, e)
		case <-ctx.Done():
			m.flush()
			return nil
		}
	}
}

func (m *Neo4jMirror) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	for {
		select {
		case e := <-m.queue:
			m.write(ctx, e)
		default:
			return
		}
	}
}

func (m *Neo4jMirror) write(ctx context.Context, e Event) {
	cypher, params := m.statement(e)
	if cypher == "" {
		return
	}
	if err := m.run(ctx, cypher, params); err != nil {
		// A failed write only affects the mirror, never the collection.
		m.logger.Error("neo4j mirror write failed", "kind", e.Kind, "task_id", e.Task.ID, "err", err)
		return
	}
	m.logger.Debug("neo4j mirror write", "kind", e.Kind, "task_id", e.Task.ID)
}

func (m *Neo4jMirror) statement(e Event) (string, map[string]any) {
	params := map[string]any{
		"session":     m.session.String(),
		"id":          e.Task.ID,
		"description": e.Task.Description,
		"completed":   e.Task.Completed,
	}
	switch e.Kind {
	case EventTaskAdded:
		return "MATCH (s:Session {id: $session}) " +
			"CREATE (t:Task {session: $session, id: $id, description: $description, completed: $completed})" +
			"-[:IN_SESSION]->(s)", params
	case EventTaskUpdated, EventTaskCompleted, EventTaskReopened:
		return "MATCH (t:Task {session: $session, id: $id}) " +
			"SET t.description = $description, t.completed = $completed", params
	case EventTaskDeleted:
		return "MATCH (t:Task {session: $session, id: $id}) DETACH DELETE t", params
	case EventTasksCleared:
		return "MATCH (t:Task {session: $session}) DETACH DELETE t", map[string]any{"session": m.session.String()}
	default:
		return "", nil
	}
}
