package logger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

type FileTransactionLogger struct {
	events  chan<- Event
	errors  <-chan error
	done    chan struct{}
	lastSeq uint64
	file    *os.File
}

func (l *FileTransactionLogger) WriteBuild(keys []int) {
	l.events <- Event{Type: EventBuild, Keys: slices.Clone(keys)}
}

func (l *FileTransactionLogger) WriteInsert(key int) {
	l.events <- Event{Type: EventInsert, Key: key}
}

func (l *FileTransactionLogger) WriteDelete(key int) {
	l.events <- Event{Type: EventDelete, Key: key}
}

func (l *FileTransactionLogger) Err() <-chan error {
	return l.errors
}

func (l *FileTransactionLogger) writeEvent(event Event) error {
	event.Sequence = l.lastSeq

	eventJson, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = l.file.Write(append(eventJson, '\n'))
	if err != nil {
		return err
	}
	return l.file.Sync()
}

// ReadEvents streams the events already in the file. It must be called before
// Run so that new events continue the stored sequence.
func (l *FileTransactionLogger) ReadEvents() (<-chan Event, <-chan error) {
	dec := json.NewDecoder(l.file)
	eventChan := make(chan Event)
	errorChan := make(chan error)

	go func() {
		defer close(eventChan)
		defer close(errorChan)

		for {
			var event Event
			err := dec.Decode(&event)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				errorChan <- fmt.Errorf("error parsing log event entry: %w", err)
				return
			}

			if l.lastSeq >= event.Sequence {
				errorChan <- fmt.Errorf("transaction numbers out of order: %d after %d", event.Sequence, l.lastSeq)
				return
			}

			l.lastSeq = event.Sequence
			eventChan <- event
		}
	}()
	return eventChan, errorChan
}

// Run starts the writer. After the first write error the remaining events are
// dropped and the error is reported on Err.
func (l *FileTransactionLogger) Run() {
	events := make(chan Event, 16)
	l.events = events

	errc := make(chan error, 1)
	l.errors = errc

	l.done = make(chan struct{})

	go func() {
		defer close(l.done)

		var failed bool
		for event := range events {
			if failed {
				continue
			}
			l.lastSeq++

			if err := l.writeEvent(event); err != nil {
				errc <- err
				failed = true
			}
		}
	}()
}

// Close flushes pending events and closes the file.
func (l *FileTransactionLogger) Close() error {
	if l.events != nil {
		close(l.events)
		<-l.done
	}
	return l.file.Close()
}

func NewFileTransactionLogger(filename string) (*FileTransactionLogger, error) {
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open transaction log file: %w", err)
	}
	return &FileTransactionLogger{file: file}, nil
}

// OpenFileTransactionLogger opens filename, skips past the events already in
// it and starts the writer.
func OpenFileTransactionLogger(filename string) (*FileTransactionLogger, error) {
	tlog, err := NewFileTransactionLogger(filename)
	if err != nil {
		return nil, err
	}

	events, errs := tlog.ReadEvents()
	for ok := true; ok && err == nil; {
		select {
		case err, ok = <-errs:
		case _, ok = <-events:
		}
	}
	if err != nil {
		tlog.file.Close()
		return nil, fmt.Errorf("failed to read transaction log: %w", err)
	}

	tlog.Run()
	return tlog, nil
}

// ReadFile returns all events stored in filename.
func ReadFile(filename string) ([]Event, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open transaction log file: %w", err)
	}
	defer file.Close()

	tlog := &FileTransactionLogger{file: file}
	events, errs := tlog.ReadEvents()

	var out []Event
	for {
		select {
		case err, ok := <-errs:
			if ok {
				return out, err
			}
			errs = nil
		case event, ok := <-events:
			if !ok {
				return out, nil
			}
			out = append(out, event)
		}
	}
}
