package pipeline

import (
	"log/slog"
	"strings"

	"github.com/chris-rands/phigaro/internal/config"
)

// ParseSubstitutions maps -S overrides of the form "task_name:path" to
// DummyTask instances keyed by task name. Parsing is pure: the path is
// not checked for existence until a downstream stage consumes it.
// On a duplicated task name the last entry wins.
func ParseSubstitutions(args []string, known []string) (map[string]*DummyTask, error) {
	subs := make(map[string]*DummyTask, len(args))
	for _, arg := range args {
		name, path, ok := strings.Cut(arg, ":")
		if !ok || name == "" || path == "" {
			return nil, config.Errorf("malformed substitution %q, expected task_name:path", arg)
		}
		if !contains(known, name) {
			return nil, config.Errorf("unknown substitution task %q, expected one of: %s",
				name, strings.Join(known, ", "))
		}
		subs[name] = NewDummyTask(path, name)
	}
	return subs, nil
}

// Resolve returns the substituted DummyTask for the stage if one was
// given, otherwise the real task unchanged. Applied substitutions are
// logged, naming the task and the user-supplied path.
func Resolve(subs map[string]*DummyTask, logger *slog.Logger, task Task) Task {
	if d, ok := subs[task.Name()]; ok {
		logger.Warn("substituting task output", "task", task.Name(), "path", d.Output())
		return d
	}
	return task
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
