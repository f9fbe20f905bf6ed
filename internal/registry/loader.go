package registry

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"ctf/internal/domain"
)

// Loader reads expected failure files and selects the entries for one
// machine and compiler
type Loader interface {
	Load(path, machine, compiler string) (*domain.ExpectedFailureRegistry, error)
}

// XMLLoader understands both expected failure layouts:
//
//	v1: <expectedFails><cesm><auxTests><machine><COMPILER><entry testId=".." failType=".."/>
//	v2: <expected_test_failures version="2.0.0"><test name=".."><failure type=".." issue=".."/>
type XMLLoader struct{}

// NewXMLLoader creates a new XMLLoader
func NewXMLLoader() *XMLLoader {
	return &XMLLoader{}
}

// node is a generic XML element
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

func (n *node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func (n *node) child(name string) *node {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i]
		}
	}
	return nil
}

// descendants calls fn for every element below n named name, in document order
func (n *node) descendants(name string, fn func(*node)) {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == name {
			fn(c)
		}
		c.descendants(name, fn)
	}
}

// Load reads the expected failure file at path. A missing or unparsable
// file is an error. A file with no group for the machine and compiler yields
// an empty registry and a warning.
func (l *XMLLoader) Load(path, machine, compiler string) (*domain.ExpectedFailureRegistry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("could not find expected fail file: %s: %w", abs, err)
	}

	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("error parsing expected fail file %s: %w", abs, err)
	}

	reg := &domain.ExpectedFailureRegistry{
		Source:   abs,
		Machine:  machine,
		Compiler: compiler,
	}

	if isV2(&root) {
		l.extractV2(&root, reg)
	} else {
		l.extractV1(&root, reg)
	}

	log.WithFields(log.Fields{
		"file":     abs,
		"machine":  machine,
		"compiler": compiler,
		"entries":  len(reg.Entries),
	}).Debug("loaded expected failures")

	return reg, nil
}

func isV2(root *node) bool {
	if root.XMLName.Local == "expected_test_failures" {
		return true
	}
	version := root.attr("version")
	return version != "" && !strings.HasPrefix(version, "1")
}

// extractV1 walks cesm/auxTests/<machine>/<COMPILER> below the root element
func (l *XMLLoader) extractV1(root *node, reg *domain.ExpectedFailureRegistry) {
	path := []string{"cesm", "auxTests", reg.Machine, strings.ToUpper(reg.Compiler)}
	// Tolerate files whose root element is already <cesm>.
	if root.XMLName.Local == path[0] && root.child(path[0]) == nil {
		path = path[1:]
	}

	group := root
	for _, name := range path {
		group = group.child(name)
		if group == nil {
			log.Warnf("Could not find expected fails for this machine and compiler combination: %s",
				strings.Join([]string{"cesm", "auxTests", reg.Machine, strings.ToUpper(reg.Compiler)}, "/"))
			return
		}
	}

	group.descendants("entry", func(e *node) {
		prefix := e.attr("testId")
		if prefix == "" {
			return
		}
		reg.Add(domain.ExpectedFailureEntry{
			Prefix:         prefix,
			ExpectedStatus: domain.Status(e.attr("failType")),
			IssueID:        e.attr("bugz"),
			Comment:        strings.TrimSpace(e.Text),
		})
	})
}

// extractV2 reads test/failure pairs. The v2 layout has no machine grouping
// so every failure applies.
func (l *XMLLoader) extractV2(root *node, reg *domain.ExpectedFailureRegistry) {
	root.descendants("test", func(t *node) {
		prefix := t.attr("name")
		if prefix == "" {
			return
		}
		for i := range t.Children {
			f := &t.Children[i]
			if f.XMLName.Local != "failure" {
				continue
			}
			var notes []string
			f.descendants("note", func(n *node) {
				if text := strings.TrimSpace(n.Text); text != "" {
					notes = append(notes, text)
				}
			})
			reg.Add(domain.ExpectedFailureEntry{
				Prefix:         prefix,
				ExpectedStatus: domain.Status(f.attr("type")),
				IssueID:        f.attr("issue"),
				Comment:        strings.Join(notes, "; "),
			})
		}
	})
}
