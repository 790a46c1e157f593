package player

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Player runs an external command on shuffled videos, forever. The command
// gets the video path as its last argument; any "{}" placeholder among its
// arguments is replaced with the start position in seconds.
type Player struct {
	Dir     string
	Command []string
	// RewindSec is replayed when resuming an interrupted video.
	RewindSec int
	// Verbose passes the player's output through instead of discarding it.
	Verbose bool

	Log func(format string, a ...interface{})

	// test hooks
	run   func(args []string, verbose bool) error
	sleep func(d time.Duration)
}

// Run loops until the player command fails too often in a row. State is
// saved when the loop ends for any reason.
func (p *Player) Run() error {
	state := LoadState(p.Dir)
	defer func() { _ = state.Save(p.Dir) }()

	waitAnnounced := false
	for {
		videos, err := listVideos(p.Dir)
		if err != nil {
			return err
		}
		if len(videos) == 0 {
			if !waitAnnounced {
				p.log("no videos to play yet")
				waitAnnounced = true
			}
			p.pause(10 * time.Second)
			continue
		}
		waitAnnounced = false

		video, pos, err := state.PickResume(p.Dir, p.RewindSec)
		if err != nil {
			video = state.PickShuffle(videos)
			pos = 0
		}

		p.log("playing: %s", filepath.Base(video))
		state.RegisterStart(filepath.Base(video))
		if err := p.exec(video, pos); err != nil {
			p.log("player: %v", err)
		}
		if err := state.RegisterStop(); err != nil {
			return err
		}
	}
}

func (p *Player) exec(video string, pos int) error {
	args := make([]string, 0, len(p.Command)+1)
	for _, arg := range p.Command {
		args = append(args, strings.ReplaceAll(arg, "{}", strconv.Itoa(pos)))
	}
	args = append(args, video)

	if p.run != nil {
		return p.run(args, p.Verbose)
	}
	cmd := exec.Command(args[0], args[1:]...)
	if p.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

func (p *Player) pause(d time.Duration) {
	if p.sleep != nil {
		p.sleep(d)
		return
	}
	time.Sleep(d)
}

func (p *Player) log(format string, a ...interface{}) {
	if p.Log != nil {
		p.Log(format, a...)
	}
}

func listVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var videos []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".mp4") {
			continue
		}
		videos = append(videos, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(videos)
	return videos, nil
}
