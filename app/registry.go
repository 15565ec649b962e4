package app

import (
	"fmt"
	"sort"
	"strings"
)

type cmdFunc func(s *Session, args []string) error

type command struct {
	Name    string
	Aliases []string
	Usage   string
	Desc    string
	Run     cmdFunc
}

// registry maps command words to commands. Words are case-insensitive and
// a unique prefix of a name or alias selects its command.
type registry struct {
	byName map[string]command
	words  map[string]string
}

func newRegistry() *registry {
	return &registry{
		byName: make(map[string]command),
		words:  make(map[string]string),
	}
}

func word(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (r *registry) register(cmd command) error {
	cmd.Name = word(cmd.Name)
	if cmd.Name == "" {
		return fmt.Errorf("app registry: empty command name")
	}
	if cmd.Run == nil {
		return fmt.Errorf("app registry: %q has no handler", cmd.Name)
	}
	if owner, ok := r.words[cmd.Name]; ok {
		return fmt.Errorf("app registry: %q already names %q", cmd.Name, owner)
	}
	aliases := make([]string, 0, len(cmd.Aliases))
	for _, a := range cmd.Aliases {
		a = word(a)
		if a == "" || a == cmd.Name {
			continue
		}
		if owner, ok := r.words[a]; ok {
			return fmt.Errorf("app registry: alias %q already names %q", a, owner)
		}
		aliases = append(aliases, a)
	}
	cmd.Aliases = aliases

	r.byName[cmd.Name] = cmd
	r.words[cmd.Name] = cmd.Name
	for _, a := range aliases {
		r.words[a] = cmd.Name
	}
	return nil
}

// resolve finds the command for an exact word or an unambiguous prefix.
func (r *registry) resolve(name string) (command, error) {
	w := word(name)
	if w == "" {
		return command{}, fmt.Errorf("app: empty command")
	}
	if owner, ok := r.words[w]; ok {
		return r.byName[owner], nil
	}
	var hits []string
	for _, owner := range r.matches(w) {
		if len(hits) == 0 || hits[len(hits)-1] != owner {
			hits = append(hits, owner)
		}
	}
	switch len(hits) {
	case 0:
		return command{}, fmt.Errorf("app: unknown command %q", name)
	case 1:
		return r.byName[hits[0]], nil
	}
	return command{}, fmt.Errorf("app: %q is ambiguous (%s)", name, strings.Join(hits, ", "))
}

// matches returns the command names owning a word with the given prefix,
// sorted, with one entry per matching word.
func (r *registry) matches(prefix string) []string {
	var out []string
	for w, owner := range r.words {
		if strings.HasPrefix(w, prefix) {
			out = append(out, owner)
		}
	}
	sort.Strings(out)
	return out
}

func (r *registry) names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
