package logging

import (
	"fmt"
	"time"
)

// Common field constructors.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for names that recur across the daemon.
func Component(name string) Field {
	return String("component", name)
}

// NodeID tags the log line with a cluster node id.
func NodeID(id int) Field {
	return Int("node_id", id)
}

func ClusterName(name string) Field {
	return String("cluster_name", name)
}

func LSN(key, text string) Field {
	return String(key, text)
}

func Attempt(n, max int) Field {
	return Field{Key: "attempt", Value: fmt.Sprintf("%d/%d", n, max)}
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}
