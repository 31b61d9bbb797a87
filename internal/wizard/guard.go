package wizard

// FetchKind вид загрузки, у каждого вида своя последовательность поколений
type FetchKind int

const (
	FetchSlots FetchKind = iota
	FetchSubscriptions
)

// Ticket captured when a fetch starts; the result may be applied only while the ticket is current
type Ticket struct {
	kind FetchKind
	gen  uint64
}

// Guard выдает билеты загрузок и помечает устаревшие.
// Не потокобезопасен, вызывается под мьютексом контроллера.
type Guard struct {
	gens   map[FetchKind]uint64
	closed bool
}

// NewGuard создает guard
func NewGuard() *Guard {
	return &Guard{gens: make(map[FetchKind]uint64)}
}

// Begin выдает новый билет; все предыдущие билеты этого вида становятся устаревшими
func (g *Guard) Begin(kind FetchKind) Ticket {
	g.gens[kind]++
	return Ticket{kind: kind, gen: g.gens[kind]}
}

// Invalidate помечает устаревшими все выданные билеты вида
func (g *Guard) Invalidate(kind FetchKind) {
	g.gens[kind]++
}

// Valid проверяет, что результат загрузки еще можно применить
func (g *Guard) Valid(t Ticket) bool {
	return !g.closed && g.gens[t.kind] == t.gen
}

// Close делает устаревшими все билеты навсегда
func (g *Guard) Close() {
	g.closed = true
}
