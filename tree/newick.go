// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Errors produced when reading malformed tree text.
var (
	ErrUnbalanced   = errors.New("unbalanced parenthesis")
	ErrNesting      = errors.New("unnested children")
	ErrLabelSpace   = errors.New("unescaped whitespace in label")
	ErrBadLength    = errors.New("invalid branch length")
	ErrBadEdge      = errors.New("invalid edge annotation")
	ErrDupEdge      = errors.New("repeated edge identifier")
	ErrUnterminated = errors.New("unterminated tree")
)

// A FormatError is the error produced
// when reading malformed tree text.
// It wraps one of the format errors defined by the package,
// with the offending token,
// if any.
type FormatError struct {
	Token string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("tree: %v", e.Err)
	}
	return fmt.Sprintf("tree: token %q: %v", e.Token, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Edges is the table that maps edge identifiers,
// as assigned by a phylogenetic placement program,
// to the node at the child side of each edge.
//
// The table is filled while reading a tree
// and is read-only afterwards.
type Edges struct {
	nodes []*Node
	n     int
}

// Node returns the node at the child side
// of the indicated edge.
// It returns nil for an unassigned identifier.
func (e *Edges) Node(id int) *Node {
	if id < 0 || id >= len(e.nodes) {
		return nil
	}
	return e.nodes[id]
}

// Len returns the number of assigned edges.
func (e *Edges) Len() int {
	return e.n
}

// IDs returns the assigned edge identifiers,
// in ascending order.
func (e *Edges) IDs() []int {
	ids := make([]int, 0, e.n)
	for id, n := range e.nodes {
		if n != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func (e *Edges) add(id int, n *Node) error {
	for id >= len(e.nodes) {
		e.nodes = append(e.nodes, nil)
	}
	if e.nodes[id] != nil {
		return &FormatError{Token: strconv.Itoa(id), Err: ErrDupEdge}
	}
	e.nodes[id] = n
	e.n++
	return nil
}

// A token is an element of a tree in parenthetical notation:
// either one of the structural characters
// "(", ")", ",", ":", ";"
// (stored in kind),
// or a label (kind 0).
type token struct {
	kind rune
	text string
}

const structural = "(),;:"

// tokenize splits tree text into tokens.
// It stops after the first tree terminator
// (an unescaped semicolon).
func tokenize(r io.Reader) ([]token, error) {
	rd := bufio.NewReader(r)

	var toks []token
	var buf []rune
	notEscaped := true
	labelStart := false
	commentDepth := 0
	var lastNonWS, lastChar rune

	for {
		c, _, err := rd.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		// Comments may nest,
		// except when opened just after a closing quote.
		if c == '[' && notEscaped {
			if lastNonWS != '\'' || commentDepth == 0 {
				commentDepth++
			}
		}
		if commentDepth > 0 {
			if c == ']' && lastNonWS != '\'' {
				commentDepth--
			}
			lastNonWS = c
			continue
		}

		if notEscaped && strings.ContainsRune(structural, c) {
			labelStart = false
			meta := string(buf)
			if lastNonWS == '\'' {
				// a quoted literal is passed unchanged
				toks = append(toks, token{text: meta})
			} else if meta != "" {
				toks = append(toks, token{text: strings.ReplaceAll(meta, "_", " ")})
			}
			buf = buf[:0]
			toks = append(toks, token{kind: c})
			if c == ';' {
				return toks, nil
			}
		} else if c == '\'' {
			notEscaped = !notEscaped
			labelStart = true
			if lastNonWS == '\'' {
				// two quotes escape a literal quote
				buf = append(buf, c)
				lastNonWS = 0
				lastChar = 0
				continue
			}
		} else if !unicode.IsSpace(c) || !notEscaped {
			if labelStart && unicode.IsSpace(lastChar) && notEscaped {
				return nil, &FormatError{Token: string(buf), Err: ErrLabelSpace}
			}
			buf = append(buf, c)
			labelStart = true
		} else {
			lastChar = c
			continue
		}

		lastChar = c
		lastNonWS = c
	}
	return toks, nil
}

// An edge annotation is a branch length
// followed by the edge identifier in curly braces,
// for example "0.0123{15}".
var edgeRx = regexp.MustCompile(`^([\d.]+)\{(\d+)\}$`)

// ReadNewick reads a tree in parenthetical
// ("newick") notation,
// including trees with the per edge identifiers
// used by the jplace placement format.
// It returns the tree
// and the table of edge identifiers
// (empty for trees without edge annotations).
func ReadNewick(r io.Reader) (*Tree, *Edges, error) {
	toks, err := tokenize(r)
	if err != nil {
		return nil, nil, err
	}

	root := &Node{}
	type stackElem struct {
		n     *Node
		depth int
	}
	stack := []stackElem{{n: root}}
	depth := 0
	last := token{kind: -1}
	nextIsDist := false
	edges := &Edges{}

	for _, tok := range toks {
		// a label that is not a branch length
		// names the node at the top of the stack
		if last.kind == 0 {
			if !nextIsDist {
				stack[len(stack)-1].n.name = last.text
			} else {
				nextIsDist = false
			}
		}

		switch {
		case tok.kind == ':':
			nextIsDist = true
		case last.kind == ':':
			if err := setBranch(stack[len(stack)-1].n, tok, edges); err != nil {
				return nil, nil, err
			}
		case tok.kind == '(':
			depth++
			stack = append(stack, stackElem{n: &Node{}, depth: depth})
		case tok.kind == ',':
			stack = append(stack, stackElem{n: &Node{}, depth: depth})
		case tok.kind == ')':
			if len(stack) < 2 {
				return nil, nil, &FormatError{Err: ErrUnbalanced}
			}
			var children []*Node
			for len(stack) > 0 && stack[len(stack)-1].depth == depth {
				children = append(children, stack[len(stack)-1].n)
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, nil, &FormatError{Err: ErrUnbalanced}
			}
			slices.Reverse(children)
			parent := stack[len(stack)-1].n
			if len(parent.children) > 0 {
				return nil, nil, &FormatError{Err: ErrNesting}
			}
			for _, c := range children {
				c.parent = parent
			}
			parent.children = children
			depth--
		case tok.kind == ';':
			if len(stack) == 1 {
				return &Tree{root: root}, edges, nil
			}
			return nil, nil, &FormatError{Err: ErrUnbalanced}
		}
		last = tok
	}
	return nil, nil, &FormatError{Err: ErrUnterminated}
}

// setBranch parses a branch length annotation,
// with or without an edge identifier.
func setBranch(n *Node, tok token, edges *Edges) error {
	if tok.kind != 0 {
		return &FormatError{Token: string(tok.kind), Err: ErrBadLength}
	}
	if m := edgeRx.FindStringSubmatch(tok.text); m != nil {
		l, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return &FormatError{Token: tok.text, Err: ErrBadLength}
		}
		id, err := strconv.Atoi(m[2])
		if err != nil {
			return &FormatError{Token: tok.text, Err: ErrBadEdge}
		}
		n.length, n.hasLen = l, true
		return edges.add(id, n)
	}
	if strings.ContainsAny(tok.text, "{}") {
		return &FormatError{Token: tok.text, Err: ErrBadEdge}
	}
	l, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return &FormatError{Token: tok.text, Err: ErrBadLength}
	}
	n.length, n.hasLen = l, true
	return nil
}

// Newick writes the tree in parenthetical notation,
// without edge identifiers.
func (t *Tree) Newick(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, t.root)
	bw.WriteString(";\n")
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node) {
	if len(n.children) > 0 {
		w.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				w.WriteByte(',')
			}
			writeNode(w, c)
		}
		w.WriteByte(')')
	}
	w.WriteString(newickLabel(n.name))
	if n.hasLen {
		w.WriteByte(':')
		w.WriteString(strconv.FormatFloat(n.length, 'g', -1, 64))
	}
}

// newickLabel formats a node name for output:
// names with structural characters are quoted,
// otherwise spaces are written as underscores.
func newickLabel(name string) string {
	if name == "" {
		return ""
	}
	if strings.ContainsAny(name, structural+"[]'_\t\n") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return strings.ReplaceAll(name, " ", "_")
}
