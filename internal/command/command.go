package command

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/simonbystrom/hogwarts/internal/hogwarts"
	"github.com/simonbystrom/hogwarts/internal/house"
)

const (
	DefaultFindDelay  = 100 * time.Millisecond
	DefaultCycleDelay = 1200 * time.Millisecond
)

// Target is the part of the module the interpreter drives.
type Target interface {
	Stage() hogwarts.Stage
	Len() int
	Cursor() int
	At(i int) hogwarts.Association
	Choose(h house.House) (bool, error)
}

// Kind classifies a Result.
type Kind int

const (
	// Rejected means the directive was malformed, unknown or used in the
	// wrong stage.
	Rejected Kind = iota
	// Info is a chat-style reply that changes nothing.
	Info
	// Moves carries a Walk for the caller to drive.
	Moves
	// Choice means a house was submitted to the module.
	Choice
)

func (k Kind) String() string {
	switch k {
	case Rejected:
		return "rejected"
	case Info:
		return "info"
	case Moves:
		return "moves"
	case Choice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the outcome of handling one line of input.
type Result struct {
	Kind    Kind
	Message string
	Walk    *Walk       // set for Moves
	House   house.House // set for Choice
	Correct bool        // set for Choice
}

// Directive is a named command.
type Directive struct {
	Name    string
	Usage   string
	Summary string
	Handler func(args string) Result
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithFindDelay sets the pause between steps of a find walk.
func WithFindDelay(d time.Duration) Option {
	return func(in *Interpreter) { in.findDelay = d }
}

// WithCycleDelay sets the pause between steps of a cycle walk.
func WithCycleDelay(d time.Duration) Option {
	return func(in *Interpreter) { in.cycleDelay = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.log = l }
}

// Interpreter turns short text directives into cursor walks or house choices.
type Interpreter struct {
	target     Target
	directives map[string]*Directive
	findDelay  time.Duration
	cycleDelay time.Duration
	log        *slog.Logger
}

// New creates an interpreter with the built-in directives registered.
func New(target Target, opts ...Option) *Interpreter {
	in := &Interpreter{
		target:     target,
		directives: make(map[string]*Directive),
		findDelay:  DefaultFindDelay,
		cycleDelay: DefaultCycleDelay,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.log == nil {
		in.log = slog.Default()
	}

	in.Register(&Directive{
		Name:    "find",
		Usage:   "find <text>",
		Summary: "walk to the next task whose name contains <text>",
		Handler: in.find,
	})
	in.Register(&Directive{
		Name:    "cycle",
		Usage:   "cycle <n>",
		Summary: "step forward through n tasks",
		Handler: in.cycle,
	})
	in.Register(&Directive{
		Name:    "help",
		Usage:   "help",
		Summary: "list commands",
		Handler: in.help,
	})
	return in
}

// Register adds or replaces a directive.
func (in *Interpreter) Register(d *Directive) {
	in.directives[d.Name] = d
}

// List returns all directives sorted by name.
func (in *Interpreter) List() []*Directive {
	result := make([]*Directive, 0, len(in.directives))
	for _, d := range in.directives {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Handle parses one line of input. Anything that is not a registered
// directive is tried as a house abbreviation.
func (in *Interpreter) Handle(input string) Result {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return reject("empty command")
	}

	parts := strings.SplitN(input, " ", 2)
	name := parts[0]
	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	if d, ok := in.directives[name]; ok {
		res := d.Handler(args)
		in.log.Debug("command handled", "directive", name, "args", args, "result", res.Kind)
		return res
	}

	if h, ok := house.Parse(input); ok {
		return in.choose(h)
	}
	return reject(fmt.Sprintf("unknown command %q, type help for a list", name))
}

func (in *Interpreter) find(args string) Result {
	if res, ok := in.requireSelection(); !ok {
		return res
	}
	if args == "" {
		return reject("usage: find <text>")
	}

	n := in.target.Len()
	cur := in.target.Cursor()
	target := -1
	for k := 1; k < n; k++ {
		i := (cur + k) % n
		if strings.Contains(strings.ToLower(in.target.At(i).Task), args) {
			target = i
			break
		}
	}
	if target < 0 {
		if strings.Contains(strings.ToLower(in.target.At(cur).Task), args) {
			return info("no other match")
		}
		return info("not found")
	}

	fwd := (target - cur + n) % n
	back := n - fwd
	delta, count := 1, fwd
	if back < fwd {
		delta, count = -1, back
	}
	return Result{
		Kind:    Moves,
		Message: fmt.Sprintf("found %s", in.target.At(target).Task),
		Walk:    newWalk(delta, count, in.findDelay),
	}
}

func (in *Interpreter) cycle(args string) Result {
	if res, ok := in.requireSelection(); !ok {
		return res
	}
	n, err := strconv.Atoi(args)
	if err != nil || n <= 0 {
		return reject("usage: cycle <n> with n a positive number")
	}
	return Result{
		Kind:    Moves,
		Message: fmt.Sprintf("cycling %d", n),
		Walk:    newWalk(1, n, in.cycleDelay),
	}
}

func (in *Interpreter) help(string) Result {
	var b strings.Builder
	for _, d := range in.List() {
		fmt.Fprintf(&b, "%s: %s\n", d.Usage, d.Summary)
	}
	b.WriteString("g, r, s, h: name the house cup winner")
	return info(b.String())
}

func (in *Interpreter) choose(h house.House) Result {
	switch in.target.Stage() {
	case hogwarts.StageSelection:
		return reject("the house cup is not decided yet")
	case hogwarts.StageResolved:
		return reject("the module is already solved")
	}

	ok, err := in.target.Choose(h)
	if err != nil {
		if errors.Is(err, hogwarts.ErrResolved) {
			return reject("the module is already solved")
		}
		return reject(err.Error())
	}
	msg := fmt.Sprintf("%s wins the house cup", h)
	if !ok {
		msg = fmt.Sprintf("%s did not win", h)
	}
	return Result{Kind: Choice, Message: msg, House: h, Correct: ok}
}

func (in *Interpreter) requireSelection() (Result, bool) {
	if in.target.Stage() != hogwarts.StageSelection || in.target.Len() == 0 {
		return reject("tasks can only be browsed before the house cup is decided"), false
	}
	return Result{}, true
}

func reject(msg string) Result { return Result{Kind: Rejected, Message: msg} }
func info(msg string) Result   { return Result{Kind: Info, Message: msg} }
