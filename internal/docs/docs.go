// Package docs resolves free-form topic arguments to documentation
// fragments. Resolution never fails: an empty or unknown topic yields the
// overview fragment.
package docs

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/spk/internal/content"
	"go.uber.org/zap"
)

// DefaultFragment is returned for empty or unrecognized topics.
const DefaultFragment = "overview"

// MaxRelated caps the number of related topics a fragment may list.
const MaxRelated = 5

// TopicEntry maps one keyword to a fragment id.
type TopicEntry struct {
	Keyword    string
	FragmentID string
}

// Fragment holds a single documentation article.
type Fragment struct {
	ID      string   // short slug used as CLI argument
	Title   string   // human-readable title
	Summary string   // one-line description for topic listing
	Content string   // markdown body
	Related []string // suggested next topics, most relevant first
}

// Documentation is the result of resolving a topic argument.
type Documentation struct {
	FragmentID    string
	Fragment      Fragment
	RelatedTopics []string
}

// Registry is an immutable keyword to fragment table for one framework.
// It is safe for concurrent use.
type Registry struct {
	framework string
	keywords  map[string]string
	aliases   map[string][]string
	fragments map[string]Fragment
	order     []string
}

// NewRegistry builds a registry from loaded fragment specs and validates it.
func NewRegistry(framework string, specs []content.FragmentSpec) (*Registry, error) {
	r := &Registry{
		framework: framework,
		keywords:  make(map[string]string),
		aliases:   make(map[string][]string),
		fragments: make(map[string]Fragment, len(specs)),
	}

	for _, s := range specs {
		id := normalize(s.ID)
		if id == "" {
			return nil, fmt.Errorf("docs: %s: fragment with empty id", framework)
		}
		if _, dup := r.fragments[id]; dup {
			return nil, fmt.Errorf("docs: %s: duplicate fragment %q", framework, id)
		}
		if len(s.Related) > MaxRelated {
			return nil, fmt.Errorf("docs: %s: fragment %q lists %d related topics (max %d)", framework, id, len(s.Related), MaxRelated)
		}
		related := make([]string, len(s.Related))
		for i, rel := range s.Related {
			related[i] = normalize(rel)
		}
		r.fragments[id] = Fragment{
			ID:      id,
			Title:   s.Title,
			Summary: s.Summary,
			Content: s.Body,
			Related: related,
		}
		r.order = append(r.order, id)
	}

	if _, ok := r.fragments[DefaultFragment]; !ok {
		return nil, fmt.Errorf("docs: %s: %q fragment is required", framework, DefaultFragment)
	}

	for _, s := range specs {
		id := normalize(s.ID)
		// The id is always a keyword for its own fragment.
		for _, kw := range append([]string{s.ID}, s.Keywords...) {
			key := normalize(kw)
			if key == "" {
				return nil, fmt.Errorf("docs: %s: fragment %q has an empty keyword", framework, id)
			}
			if owner, dup := r.keywords[key]; dup {
				return nil, fmt.Errorf("docs: %s: keyword %q maps to both %q and %q", framework, key, owner, id)
			}
			r.keywords[key] = id
			if key != id {
				r.aliases[id] = append(r.aliases[id], key)
			}
		}
	}

	for _, id := range r.order {
		for _, rel := range r.fragments[id].Related {
			if rel == id {
				return nil, fmt.Errorf("docs: %s: fragment %q lists itself as related", framework, id)
			}
			if _, ok := r.fragments[rel]; !ok {
				return nil, fmt.Errorf("docs: %s: fragment %q: related topic %q does not exist", framework, id, rel)
			}
		}
	}

	return r, nil
}

// Framework returns the framework target this registry serves.
func (r *Registry) Framework() string {
	return r.framework
}

// Resolve maps a topic argument to a fragment id. Input is trimmed and
// lowercased; empty or unknown topics resolve to DefaultFragment.
func (r *Registry) Resolve(topic string) string {
	key := normalize(topic)
	if id, ok := r.keywords[key]; ok {
		return id
	}
	if key != "" {
		zap.L().Debug("unknown topic, using default",
			zap.String("framework", r.framework),
			zap.String("topic", key))
	}
	return DefaultFragment
}

// Documentation resolves topic and returns the fragment with its related
// topics in configured order.
func (r *Registry) Documentation(topic string) Documentation {
	id := r.Resolve(topic)
	f := r.fragments[id]
	return Documentation{
		FragmentID:    id,
		Fragment:      f,
		RelatedTopics: append([]string(nil), f.Related...),
	}
}

// Fragments returns every fragment in display order.
func (r *Registry) Fragments() []Fragment {
	out := make([]Fragment, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.fragments[id])
	}
	return out
}

// Entries returns every keyword mapping, grouped by fragment in display order.
func (r *Registry) Entries() []TopicEntry {
	var out []TopicEntry
	for _, id := range r.order {
		out = append(out, TopicEntry{Keyword: id, FragmentID: id})
		for _, kw := range r.aliases[id] {
			out = append(out, TopicEntry{Keyword: kw, FragmentID: id})
		}
	}
	return out
}

// Keywords returns the aliases that resolve to fragment id, excluding the id.
func (r *Registry) Keywords(id string) []string {
	return append([]string(nil), r.aliases[id]...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
