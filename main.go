package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Kazi584/roller-coaster-builder/internal/camera"
	"github.com/Kazi584/roller-coaster-builder/internal/coaster"
	"github.com/Kazi584/roller-coaster-builder/internal/monitoring"
	"github.com/Kazi584/roller-coaster-builder/internal/ride"
	"github.com/Kazi584/roller-coaster-builder/internal/timeutil"
	"github.com/Kazi584/roller-coaster-builder/internal/version"
)

var (
	showVersion = flag.Bool("version", false, "Print version and exit")
	verbose     = flag.Bool("verbose", false, "Log collaborator state transitions")
	circuitSecs = flag.Float64("circuit", 30, "Seconds per full circuit at ride speed 1")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("roller-coaster-builder %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if !*verbose {
		monitoring.SetLogger(nil)
	}

	editor := coaster.NewEditor(coaster.DefaultLoopConfig())
	rig := camera.NewRig(editor)

	cfg := ride.DefaultConfig()
	cfg.CircuitTime = time.Duration(*circuitSecs * float64(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ride.NewLoop(editor, timeutil.RealClock{}, cfg).Run(ctx)

	console(editor, rig)
}

// console is the line-oriented input collaborator: each command maps onto a
// single store operation. Points are addressed by sequence index at the
// prompt and translated to ids before the call.
func console(editor *coaster.Editor, rig *camera.Rig) {
	fmt.Println("roller-coaster-builder console. Type 'help' for commands.")

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "help":
			printHelp()
		case "add":
			pos, err := parseVec(args)
			if err != nil {
				fmt.Println(err)
				continue
			}
			p := editor.AddTrackPoint(pos)
			fmt.Printf("added point %d (%s)\n", editor.PointCount()-1, shortID(p.ID))
		case "list":
			listPoints(editor)
		case "move":
			id, ok := pointID(editor, args)
			if !ok {
				continue
			}
			pos, err := parseVec(args[1:])
			if err != nil {
				fmt.Println(err)
				continue
			}
			editor.UpdateTrackPoint(id, pos)
		case "tilt":
			id, ok := pointID(editor, args)
			if !ok {
				continue
			}
			if len(args) < 2 {
				fmt.Println("usage: tilt <n> <degrees>")
				continue
			}
			deg, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				fmt.Printf("bad angle %q\n", args[1])
				continue
			}
			editor.UpdateTrackPointTilt(id, deg*degToRad)
		case "remove":
			id, ok := pointID(editor, args)
			if !ok {
				continue
			}
			editor.RemoveTrackPoint(id)
		case "select":
			if len(args) == 1 && args[0] == "none" {
				editor.SelectPoint("")
				continue
			}
			id, ok := pointID(editor, args)
			if !ok {
				continue
			}
			editor.SelectPoint(id)
		case "loop":
			id, ok := pointID(editor, args)
			if !ok {
				continue
			}
			before := editor.PointCount()
			editor.CreateLoopAtPoint(id)
			if editor.PointCount() == before {
				fmt.Println("loop rejected: point must have a successor")
			} else {
				fmt.Printf("loop inserted, track is now %d points\n", editor.PointCount())
			}
		case "mode":
			if len(args) != 1 {
				fmt.Printf("mode: %s\n", editor.Mode())
				continue
			}
			switch coaster.Mode(args[0]) {
			case coaster.ModeBuild, coaster.ModeRide, coaster.ModePreview:
				editor.SetMode(coaster.Mode(args[0]))
			default:
				fmt.Println("usage: mode build|ride|preview")
			}
		case "ride":
			editor.StartRide()
			if !editor.IsRiding() {
				fmt.Println("ride rejected: need at least 2 points")
			}
		case "stop":
			editor.StopRide()
		case "progress":
			fmt.Printf("%.3f\n", editor.RideProgress())
		case "speed":
			if len(args) != 1 {
				fmt.Println("usage: speed <multiplier>")
				continue
			}
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				fmt.Printf("bad speed %q\n", args[0])
				continue
			}
			editor.SetRideSpeed(v)
		case "focus":
			rig.FocusSelected()
		case "night", "supports", "chain", "looped":
			setToggle(editor, cmd, args)
		case "clear":
			editor.ClearTrack()
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q, try 'help'\n", cmd)
		}
	}
}

const degToRad = math.Pi / 180

func printHelp() {
	fmt.Print(`commands:
  add <x> <y> <z>        append a track point
  list                   print the point sequence
  move <n> <x> <y> <z>   move point n
  tilt <n> <degrees>     tilt point n
  remove <n>             remove point n
  select <n>|none        select point n
  loop <n>               insert a vertical loop at point n
  ride | stop | progress ride the track
  mode [build|ride|preview]
  speed <multiplier>     set ride speed
  focus                  aim the camera at the selection
  night|supports|chain|looped on|off
  clear                  reset the track
  quit
`)
}

func listPoints(editor *coaster.Editor) {
	pts := editor.TrackPoints()
	if len(pts) == 0 {
		fmt.Println("(empty track)")
		return
	}
	selected := editor.SelectedPointID()
	for i, p := range pts {
		marker := " "
		if p.ID == selected {
			marker = "*"
		}
		fmt.Printf("%s %3d  (%7.2f, %7.2f, %7.2f)  tilt %6.1f°  %s\n",
			marker, i, p.Position.X, p.Position.Y, p.Position.Z, p.Tilt/degToRad, shortID(p.ID))
	}
}

// pointID translates a prompt index into a point id.
func pointID(editor *coaster.Editor, args []string) (string, bool) {
	if len(args) < 1 {
		fmt.Println("missing point number")
		return "", false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("bad point number %q\n", args[0])
		return "", false
	}
	pts := editor.TrackPoints()
	if n < 0 || n >= len(pts) {
		fmt.Printf("no point %d (track has %d points)\n", n, len(pts))
		return "", false
	}
	return pts[n].ID, true
}

func parseVec(args []string) (r3.Vec, error) {
	if len(args) < 3 {
		return r3.Vec{}, fmt.Errorf("need x y z coordinates")
	}
	var coords [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("bad coordinate %q", args[i])
		}
		coords[i] = v
	}
	return r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func setToggle(editor *coaster.Editor, name string, args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Printf("usage: %s on|off\n", name)
		return
	}
	v := args[0] == "on"
	switch name {
	case "night":
		editor.SetIsNightMode(v)
	case "supports":
		editor.SetShowWoodSupports(v)
	case "chain":
		editor.SetHasChainLift(v)
	case "looped":
		editor.SetIsLooped(v)
	default:
		log.Printf("unhandled toggle %q", name)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
