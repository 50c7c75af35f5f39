package utrace

import (
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"
)

// ProcessIdentity supplies the read-only process facts rendered by %H, %N,
// %P, %U and %w, the clock behind %D and the terminal check behind %W.
type ProcessIdentity interface {
	Pid() int
	Hostname() string
	Username() string
	Cwd() string
	Progname() string
	Now() time.Time
	IsTty() bool
}

// StaticIdentity is a fixed ProcessIdentity, mostly useful in tests and for
// callers that discover the process facts themselves.
type StaticIdentity struct {
	PID      int
	Host     string
	User     string
	Dir      string
	Program  string
	Clock    func() time.Time
	Terminal bool
}

func (s StaticIdentity) Pid() int         { return s.PID }
func (s StaticIdentity) Hostname() string { return s.Host }
func (s StaticIdentity) Username() string { return s.User }
func (s StaticIdentity) Cwd() string      { return s.Dir }
func (s StaticIdentity) Progname() string { return s.Program }
func (s StaticIdentity) IsTty() bool      { return s.Terminal }

func (s StaticIdentity) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

type systemIdentity struct {
	once     sync.Once
	hostname string
	username string
	cwd      string
	progname string
	tty      bool
}

var sysIdentity systemIdentity

// SystemIdentity returns the identity of the running process. Host, user,
// working directory and program name are captured once; the pid is read on
// every call so a forked child reports its own.
func SystemIdentity() ProcessIdentity {
	return &sysIdentity
}

func (s *systemIdentity) load() {
	s.once.Do(func() {
		if host, err := os.Hostname(); err == nil {
			s.hostname = host
		}
		if u, err := user.Current(); err == nil {
			s.username = u.Username
		} else {
			s.username = os.Getenv("USER")
		}
		if wd, err := os.Getwd(); err == nil {
			s.cwd = wd
		}
		if len(os.Args) > 0 {
			s.progname = filepath.Base(os.Args[0])
		}
		s.tty = isTerminal(os.Stderr)
	})
}

func (s *systemIdentity) Pid() int         { return os.Getpid() }
func (s *systemIdentity) Hostname() string { s.load(); return s.hostname }
func (s *systemIdentity) Username() string { s.load(); return s.username }
func (s *systemIdentity) Cwd() string      { s.load(); return s.cwd }
func (s *systemIdentity) Progname() string { s.load(); return s.progname }
func (s *systemIdentity) Now() time.Time   { return time.Now() }
func (s *systemIdentity) IsTty() bool      { s.load(); return s.tty }
