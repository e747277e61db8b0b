package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/soypat/cop1"
	"github.com/soypat/cop1/fop"
	"github.com/soypat/cop1/internal"
	"github.com/soypat/cop1/link"
	"github.com/soypat/cop1/seqs"
	"github.com/soypat/cop1/tc"
)

const scid = 0x1ab

type flags struct {
	vcs         int
	n           int
	size        int
	loss        float64
	window      int
	txlim       int
	t1          time.Duration
	seed        uint
	verbosity   string
	interactive bool
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	f := flags{
		vcs:       2,
		n:         100,
		size:      200,
		loss:      0.1,
		window:    16,
		txlim:     8,
		t1:        20 * time.Millisecond,
		seed:      1,
		verbosity: "info",
	}
	flag.IntVar(&f.vcs, "vcs", f.vcs, "Number of virtual channels to simulate.")
	flag.IntVar(&f.n, "n", f.n, "Number of SDUs sent per virtual channel.")
	flag.IntVar(&f.size, "size", f.size, "Maximum SDU size in bytes.")
	flag.Float64Var(&f.loss, "loss", f.loss, "Probability of losing a frame or CLCW, in [0,1).")
	flag.IntVar(&f.window, "window", f.window, "FOP sliding window width K.")
	flag.IntVar(&f.txlim, "txlim", f.txlim, "Transmission limit per frame.")
	flag.DurationVar(&f.t1, "t1", f.t1, "Retransmission timer initial value.")
	flag.UintVar(&f.seed, "seed", f.seed, "Seed of the loss pattern.")
	flag.StringVar(&f.verbosity, "v", f.verbosity, "Log level: error, warn, info, debug or trace.")
	flag.BoolVar(&f.interactive, "i", f.interactive, "Open an interactive directive console on a single virtual channel.")
	flag.Parse()
	lvl, err := parseLevel(f.verbosity)
	if err != nil {
		flag.Usage()
		return err
	}
	switch {
	case f.vcs < 1 || f.vcs > 64:
		return errors.New("vcs must be in 1..64")
	case f.window < 1 || f.window > 254:
		return errors.New("window must be in 1..254")
	case f.txlim < 1 || f.txlim > 255:
		return errors.New("txlim must be in 1..255")
	case f.size < 1:
		return errors.New("size must be positive")
	}
	if f.interactive {
		return console(f, lvl)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl, ReplaceAttr: internal.ReplaceLevel}))
	return simulate(f, log)
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "trace":
		return internal.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

func frameConfig(vcid uint8, maxSDU int) tc.Config {
	return tc.Config{
		SCID:          scid,
		VCID:          vcid,
		MAPID:         0,
		CRC:           true,
		SegmentHeader: true,
		MaxDataLen:    64,
		MaxSDULen:     maxSDU,
	}
}

type channel struct {
	s        *link.Sender
	r        *link.Receiver
	next     int
	received int
	alerts   int
}

func newChannel(f flags, vcid uint8, log *slog.Logger) (*channel, error) {
	ch := &channel{s: new(link.Sender), r: new(link.Receiver)}
	err := ch.s.Configure(link.SenderConfig{
		Frame: frameConfig(vcid, f.size),
		FOP: fop.Config{
			SlidingWindow: seqs.Size(f.window),
			T1:            f.t1,
			TxLimit:       uint8(f.txlim),
			TimeoutType:   fop.TimeoutAlert,
			Logger:        log,
		},
		Logger: log,
	})
	if err != nil {
		return nil, err
	}
	err = ch.r.Configure(link.ReceiverConfig{
		Frame:       frameConfig(vcid, f.size),
		RxQueueSize: 8,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// sduFor returns the i'th SDU of a virtual channel. Contents are derived
// from the indices so the receiving end can check them.
func sduFor(vcid, i, maxSize int) []byte {
	n := 1 + (i*37+vcid*11)%maxSize
	sdu := make([]byte, n)
	for j := range sdu {
		sdu[j] = byte(vcid*31 + i*7 + j)
	}
	return sdu
}

func simulate(f flags, log *slog.Logger) error {
	ground := link.NewRegistry()
	space := link.NewRegistry()
	chans := make([]*channel, f.vcs)
	for i := range chans {
		ch, err := newChannel(f, uint8(i), log)
		if err != nil {
			return err
		}
		if err = ground.AddSender(ch.s); err != nil {
			return err
		}
		if err = space.AddReceiver(ch.r); err != nil {
			return err
		}
		if n := ch.s.InitiateWithSetVR(0); n != cop1.AcceptDir {
			return fmt.Errorf("vc%d: initiation rejected: %s", i, n)
		}
		chans[i] = ch
		defer ch.s.TerminateAD()
	}
	lb, err := link.NewLoopback(ground, space, f.loss, uint32(f.seed), log)
	if err != nil {
		return err
	}
	start := time.Now()
	backoff := internal.NewBackoff(internal.BackoffLinkPump)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	for ctx.Err() == nil {
		done := true
		for vcid, ch := range chans {
			err = ch.exchange(vcid, f, log)
			if err != nil {
				return err
			}
			done = done && ch.received == f.n
		}
		if done {
			break
		}
		// CLCWs move on every step, only frames are traffic.
		before := lb.Stats().Frames
		lb.Step()
		if lb.Stats().Frames == before {
			backoff.Miss()
		} else {
			backoff.Hit()
		}
	}
	if ctx.Err() != nil {
		return fmt.Errorf("simulation timed out: %+v", lb.Stats())
	}
	stats := lb.Stats()
	log.Info("simulation done",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("frames", stats.Frames),
		slog.Int("frames-dropped", stats.FramesDropped),
		slog.Int("clcws", stats.CLCWs),
		slog.Int("clcws-dropped", stats.CLCWsDropped),
		slog.Int("recv-errors", stats.RecvErrors),
	)
	for vcid, ch := range chans {
		st := ch.s.Status()
		log.Info("channel", slog.Int("vcid", vcid), slog.Int("sdus", ch.received),
			slog.Int("alerts", ch.alerts), slog.Uint64("vs", uint64(st.VS)))
	}
	return nil
}

// exchange reads delivered SDUs, checks their order and offers the next SDU
// to the sender. An alert restarts the AD service from the first SDU the
// receiver has not delivered.
func (ch *channel) exchange(vcid int, f flags, log *slog.Logger) error {
	for {
		sdu, err := ch.r.ReadSDU()
		if err != nil {
			break
		}
		if want := sduFor(vcid, ch.received, f.size); !bytes.Equal(sdu, want) {
			return fmt.Errorf("vc%d: SDU %d out of order or corrupted", vcid, ch.received)
		}
		ch.received++
	}
	ch.r.BufferRelease()
	st := ch.s.Status()
	switch {
	case st.State == fop.StateInit:
		ch.alerts++
		// The Set V(R) command discards a partially reassembled SDU.
		ch.next = ch.received
		vr := ch.r.Report().Value
		log.Warn("re-initiating", slog.Int("vcid", vcid), slog.String("signal", st.Signal.String()), slog.Uint64("vr", uint64(vr)))
		if n := ch.s.InitiateWithSetVR(vr); n != cop1.AcceptDir {
			return fmt.Errorf("vc%d: re-initiation rejected: %s", vcid, n)
		}
	case st.State == fop.StateActive && ch.next < f.n:
		err := ch.s.Send(sduFor(vcid, ch.next, f.size))
		var nerr *link.NotificationError
		switch {
		case err == nil:
			ch.next++
		case errors.As(err, &nerr) && nerr.Temporary():
		default:
			return fmt.Errorf("vc%d: %w", vcid, err)
		}
	}
	return nil
}

func console(f flags, lvl slog.Level) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("interactive mode requires a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "cop1> ")
	log := slog.New(slog.NewTextHandler(t, &slog.HandlerOptions{Level: lvl, ReplaceAttr: internal.ReplaceLevel}))
	ground := link.NewRegistry()
	space := link.NewRegistry()
	ch, err := newChannel(f, 0, log)
	if err != nil {
		return err
	}
	ground.AddSender(ch.s)
	space.AddReceiver(ch.r)
	defer ch.s.TerminateAD()
	lb, err := link.NewLoopback(ground, space, f.loss, uint32(f.seed), log)
	if err != nil {
		return err
	}
	fmt.Fprintln(t, "COP-1 console on VC 0. Type help for commands.")
	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		quit, err := command(t, ch, lb, line)
		if err != nil {
			fmt.Fprintln(t, "error:", err)
		}
		if quit {
			return nil
		}
	}
}

const consoleHelp = `init            initiate AD service without CLCW check
initclcw        initiate AD service with CLCW check
unlock          initiate AD service with Unlock
setvr N         initiate AD service with Set V(R) to N
term            terminate AD service
resume          resume AD service
setvs N         set V(S) to N
window N        set sliding window width
t1 D            set timer initial value, i.e: 500ms
txlim N         set transmission limit
tt N            set timeout type, 0 alert and 1 suspend
send TEXT       send TEXT on the AD service
bd TEXT         send TEXT on the BD service
step            exchange frames and CLCWs once
status          print sender and receiver state
quit            exit the console`

func command(w io.Writer, ch *channel, lb *link.Loopback, line string) (quit bool, err error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	var n cop1.Notification
	switch name {
	case "":
		return false, nil
	case "help":
		fmt.Fprintln(w, consoleHelp)
		return false, nil
	case "quit", "exit":
		return true, nil
	case "init":
		n = ch.s.InitiateNoCLCW()
	case "initclcw":
		n = ch.s.InitiateWithCLCW()
	case "unlock":
		n = ch.s.InitiateWithUnlock()
	case "setvr":
		v, err := parseUint8(arg)
		if err != nil {
			return false, err
		}
		n = ch.s.InitiateWithSetVR(seqs.Value(v))
	case "term":
		n = ch.s.TerminateAD()
	case "resume":
		n = ch.s.ResumeAD()
	case "setvs":
		v, err := parseUint8(arg)
		if err != nil {
			return false, err
		}
		n = ch.s.SetVS(seqs.Value(v))
	case "window":
		v, err := parseUint8(arg)
		if err != nil {
			return false, err
		}
		n = ch.s.SetSlidingWindow(seqs.Size(v))
	case "t1":
		d, err := time.ParseDuration(arg)
		if err != nil {
			return false, err
		}
		n = ch.s.SetT1(d)
	case "txlim":
		v, err := parseUint8(arg)
		if err != nil {
			return false, err
		}
		n = ch.s.SetTxLimit(v)
	case "tt":
		v, err := parseUint8(arg)
		if err != nil {
			return false, err
		}
		n = ch.s.SetTimeoutType(fop.TimeoutType(v))
	case "send":
		err = ch.s.Send([]byte(arg))
		if err == nil {
			fmt.Fprintln(w, "accepted")
		}
		return false, err
	case "bd":
		err = ch.s.SendExpedited([]byte(arg))
		if err == nil {
			fmt.Fprintln(w, "accepted")
		}
		return false, err
	case "step":
		moved := lb.Step()
		fmt.Fprintf(w, "moved %d\n", moved)
		for {
			sdu, err := ch.r.ReadSDU()
			if err != nil {
				break
			}
			fmt.Fprintf(w, "received %q\n", sdu)
		}
		ch.r.BufferRelease()
		return false, nil
	case "status":
		st := ch.s.Status()
		rep := ch.r.Report()
		fmt.Fprintf(w, "FOP %s V(S)=%d NN(R)=%d outstanding=%d K=%d tx=%d/%d ss=%d signal=%s timer=%v pending=%d\n",
			st.State, st.VS, st.NNR, st.Outstanding, st.Window, st.TxCount, st.TxLimit,
			st.SuspendState, st.Signal, st.TimerRunning, st.PendingTx)
		fmt.Fprintf(w, "FARM %s V(R)=%d lockout=%v wait=%v retransmit=%v farmB=%d buffered=%d\n",
			ch.r.State(), rep.Value, rep.Lockout, rep.Wait, rep.Retransmit, rep.FarmB, ch.r.Buffered())
		fmt.Fprintf(w, "link %+v\n", lb.Stats())
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q, type help", name)
	}
	fmt.Fprintln(w, n)
	return false, nil
}

func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	return uint8(v), err
}
