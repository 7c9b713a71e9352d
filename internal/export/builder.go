package export

import (
	"strings"
)

// DefaultChunkBytes bounds one upload body; the execution endpoint
// rejects oversized payloads. The budget counts bytes, not runes, because
// the endpoint's body cap does.
const DefaultChunkBytes = 100_000

// Chunk is a block of independently executable statement text. Indexes are
// 1-based and follow build order.
type Chunk struct {
	Index int
	SQL   string
}

// Builder accumulates terminated statements into size-bounded chunks.
// A statement is never split across chunks; a statement larger than the
// budget gets a chunk of its own.
type Builder struct {
	Budget int // chunk size bound in bytes

	Statements int
	TotalRows  int64

	chunks []Chunk
	cur    strings.Builder
}

func NewBuilder(budget int) *Builder {
	if budget <= 0 {
		budget = DefaultChunkBytes
	}
	return &Builder{Budget: budget}
}

// Add appends one statement (without terminator) to the script, starting a
// new chunk first if the current one would overflow the budget.
func (b *Builder) Add(stmt string) {
	terminated := stmt + ";\n"
	if b.cur.Len() > 0 && b.cur.Len()+len(terminated) > b.Budget {
		b.flush()
	}
	b.cur.WriteString(terminated)
	b.Statements++
}

// AddRows is Add plus row accounting for the final report.
func (b *Builder) AddRows(stmt string, rows int) {
	b.Add(stmt)
	b.TotalRows += int64(rows)
}

func (b *Builder) flush() {
	if b.cur.Len() == 0 {
		return
	}
	b.chunks = append(b.chunks, Chunk{Index: len(b.chunks) + 1, SQL: b.cur.String()})
	b.cur.Reset()
}

// Chunks closes the current chunk and returns the full ordered sequence.
func (b *Builder) Chunks() []Chunk {
	b.flush()
	return b.chunks
}
