package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// property is a node of an ordered property tree. A property either carries a
// value or a list of children. Children with empty keys form an array.
type property struct {
	key      string
	value    interface{}
	children []*property
}

func (p *property) put(key string, value interface{}) {
	p.children = append(p.children, &property{key: key, value: value})
}

func (p *property) putChild(key string, child *property) {
	child.key = key
	if child.children == nil {
		child.children = []*property{}
	}
	p.children = append(p.children, child)
}

func (p *property) isArray() bool {
	for _, ch := range p.children {
		if ch.key != "" {
			return false
		}
	}
	return len(p.children) > 0
}

// --- JSON ------------------------------------------------------------------

func writeJSON(w io.Writer, root *property) error {
	var sb strings.Builder
	if err := jsonValue(&sb, root, 0); err != nil {
		return err
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func jsonValue(sb *strings.Builder, p *property, depth int) error {
	if p.children == nil {
		b, err := json.Marshal(p.value)
		if err != nil {
			return err
		}
		sb.Write(b)
		return nil
	}
	if len(p.children) == 0 {
		sb.WriteString("[]")
		return nil
	}
	opening, closing := "{", "}"
	array := p.isArray()
	if array {
		opening, closing = "[", "]"
	}
	sb.WriteString(opening)
	for i, ch := range p.children {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
		indent(sb, depth+1)
		if !array {
			k, _ := json.Marshal(ch.key)
			sb.Write(k)
			sb.WriteString(": ")
		}
		if err := jsonValue(sb, ch, depth+1); err != nil {
			return err
		}
	}
	sb.WriteByte('\n')
	indent(sb, depth)
	sb.WriteString(closing)
	return nil
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
}

// --- XML -------------------------------------------------------------------

func writeXML(w io.Writer, rootName string, root *property) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	root.key = rootName
	if err := xmlElement(enc, root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func xmlElement(enc *xml.Encoder, p *property) error {
	start := xml.StartElement{Name: xml.Name{Local: p.key}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if p.children == nil {
		if err := enc.EncodeToken(xml.CharData(fmt.Sprint(p.value))); err != nil {
			return err
		}
	}
	for _, ch := range p.children {
		if err := xmlElement(enc, ch); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// --- Raw -------------------------------------------------------------------

func writeRaw(w io.Writer, root *property) error {
	var sb strings.Builder
	rawChildren(&sb, root, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func rawChildren(sb *strings.Builder, p *property, depth int) {
	for _, ch := range p.children {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(ch.key)
		if ch.children == nil {
			fmt.Fprintf(sb, "%v\n", ch.value)
			continue
		}
		sb.WriteByte('\n')
		rawChildren(sb, ch, depth+1)
	}
}
