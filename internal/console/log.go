package console

import (
	"fmt"

	"github.com/google/uuid"

	"devconsole/internal/logbuffer"
	"devconsole/pkg/consoletypes"
)

func (c *Console) buffer() *logbuffer.Buffer[consoletypes.LogRecord] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logs
}

// Log appends a record and notifies change observers.
func (c *Console) Log(message string, severity consoletypes.Severity) {
	logs := c.buffer()
	if logs == nil {
		c.host.WriteLine(fmt.Sprintf(`Log called with "%s" while uninitialized`, message), consoletypes.HostWarning)
		return
	}
	logs.Append(consoletypes.LogRecord{Message: message, Severity: severity})
}

func (c *Console) logUnless(silent bool, message string, severity consoletypes.Severity) {
	if !silent {
		c.Log(message, severity)
	}
}

// NumLogs returns the number of records held.
func (c *Console) NumLogs() int {
	if logs := c.buffer(); logs != nil {
		return logs.Len()
	}
	return 0
}

// GetLog returns record i, 0 being the oldest.
func (c *Console) GetLog(i int) (consoletypes.LogRecord, bool) {
	if logs := c.buffer(); logs != nil {
		return logs.At(i)
	}
	return consoletypes.LogRecord{}, false
}

// Logs returns a copy of all records, oldest first.
func (c *Console) Logs() []consoletypes.LogRecord {
	if logs := c.buffer(); logs != nil {
		return logs.Snapshot()
	}
	return nil
}

// LogTotal returns how many records were ever logged.
func (c *Console) LogTotal() int64 {
	if logs := c.buffer(); logs != nil {
		return logs.Total()
	}
	return 0
}

// OnLogChanged registers fn to run after every appended record.
func (c *Console) OnLogChanged(fn func()) uuid.UUID {
	return c.subscribe(logbuffer.Changed, fn)
}

// OnRebuild registers fn to run when the log was rewritten by clear.
func (c *Console) OnRebuild(fn func()) uuid.UUID {
	return c.subscribe(logbuffer.Rebuild, fn)
}

// Unsubscribe removes an observer added with OnLogChanged or OnRebuild.
func (c *Console) Unsubscribe(id uuid.UUID) bool {
	if logs := c.buffer(); logs != nil {
		return logs.Unsubscribe(id)
	}
	return false
}

func (c *Console) subscribe(event logbuffer.Event, fn func()) uuid.UUID {
	logs := c.buffer()
	if logs == nil {
		c.host.WriteLine("Log observer added while uninitialized", consoletypes.HostWarning)
		return uuid.Nil
	}
	return logs.Subscribe(event, fn)
}
