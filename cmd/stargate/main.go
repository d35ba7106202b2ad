package main

import (
	"flag"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/hollis-dev/stargate/audio"
	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/content"
	"github.com/hollis-dev/stargate/engine"
	"github.com/hollis-dev/stargate/engine/camera"
	"github.com/hollis-dev/stargate/engine/loader"
	"github.com/hollis-dev/stargate/engine/renderer"
	"github.com/hollis-dev/stargate/engine/store"
	"github.com/hollis-dev/stargate/engine/window"
	"github.com/hollis-dev/stargate/gate"
	"github.com/hollis-dev/stargate/settings"
)

func main() {
	scenePath := flag.String("scene", "assets/scene.yaml", "path to the scene manifest")
	contentPath := flag.String("content", "assets/content.yaml", "path to the content records")
	profile := flag.Bool("profile", false, "log frame pacing statistics")
	flag.Parse()

	// Persisted settings. A missing data directory degrades to in-memory
	// defaults.
	storage, err := gdata.Open(gdata.Config{AppName: "stargate"})
	if err != nil {
		log.Printf("settings: storage unavailable, settings will not persist: %v", err)
		storage = nil
	}
	prefs := settings.NewManager(storage)

	st := store.New(store.State{AudioMuted: prefs.Muted()})

	win := window.NewWindow(
		window.WithTitle("Stargate"),
		window.WithWidth(1280),
		window.WithHeight(720),
	)
	defer win.Close()

	gpu := renderer.NewRenderer(win.SurfaceDescriptor(), renderer.WithMSAA(renderer.MSAA4x))
	gpu.Resize(win.Width(), win.Height())

	loaded, err := loader.NewLoader().Load(*scenePath)
	if err != nil {
		log.Fatalf("scene: failed to load %s: %v", *scenePath, err)
	}
	sc := loaded.Scene

	cam := camera.NewCamera(
		camera.WithAspect(float32(win.Width()) / float32(win.Height())),
	)
	rig := camera.NewRig(cam)
	if pose, ok := sc.CameraPose(); ok {
		rig.CaptureBase(pose)
	} else {
		log.Printf("scene: no authored camera, camera rig inactive")
	}
	for side, pose := range loaded.FocusPoses {
		rig.SetFocusPose(side, pose)
	}

	var library content.Library
	if library, err = content.LoadLibrary(*contentPath); err != nil {
		log.Printf("content: unavailable, panels stay closed: %v", err)
		library = nil
	}

	seed := time.Now().UnixNano()
	pillars := gate.NewPillarController(st, cam, sc)
	rings := gate.NewRingController(st, sc)
	rocks := gate.NewRockController(st, cam, sc, seed)
	dayNight := gate.NewDayNightController(st, sc)
	lightning := gate.NewLightningController(st, sc, seed)
	rain := gate.NewRainController(st, sc, seed)
	dust := gate.NewDustController(st, sc, seed)
	activation := gate.NewActivationController(st, sc)
	overlay := gate.NewOverlayController(st, library, seed)
	defer func() {
		pillars.Close()
		rings.Close()
		rocks.Close()
		dayNight.Close()
		lightning.Close()
		rain.Close()
		dust.Close()
		overlay.Close()
	}()

	// The rain and dust pools add their nodes at construction, so meshes
	// upload after every controller exists.
	if err := gpu.UploadScene(sc); err != nil {
		log.Fatalf("renderer: failed to upload scene: %v", err)
	}

	sound := audio.NewEngine()
	sound.Start()
	sound.SetMuted(prefs.Muted())
	defer sound.Close()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithProfiling(*profile),
	)

	// Store-driven wiring: camera focus, audio targets, persisted mute.
	// Every store mutation also requests a frame so changes become visible
	// even from a fully settled state.
	unsubscribe := st.Subscribe(func(next, prev store.State) {
		if next.FocusedPillar != prev.FocusedPillar {
			if next.FocusedPillar == store.PillarNone {
				rig.ClearFocus()
			} else {
				rig.FocusPillar(next.FocusedPillar)
			}
		}
		if next.Raining != prev.Raining {
			if next.Raining {
				sound.SetRainVolume(0.7)
			} else {
				sound.SetRainVolume(0)
			}
		}
		if next.ActivationProgress != prev.ActivationProgress {
			sound.SetRate(1 + 0.35*float64(next.ActivationProgress))
		}
		if next.AudioMuted != prev.AudioMuted {
			sound.SetMuted(next.AudioMuted)
			prefs.SetMuted(next.AudioMuted)
		}
		eng.Invalidate()
	})
	defer unsubscribe()

	var dragging bool
	var lastX, lastY float32

	win.SetPointerMoveCallback(func(x, y float32) {
		rig.PointerMoved(x, y)
		pillars.PointerMoved(x, y)
		rocks.PointerMoved(x, y)
		if dragging && rig.Mode() == store.ModeFreeLook {
			// Orbit drag works in pixels; convert the NDC delta back and flip
			// y to screen convention.
			rig.Drag(
				(x-lastX)*float32(win.Width())/2,
				-(y-lastY)*float32(win.Height())/2,
			)
		}
		lastX, lastY = x, y
		eng.Invalidate()
	})
	win.SetPointerDownCallback(func(x, y float32) {
		dragging = true
		pillars.Click()
		eng.Invalidate()
	})
	win.SetPointerUpCallback(func(x, y float32) {
		dragging = false
	})
	win.SetScrollCallback(func(delta float32) {
		rig.Wheel(delta)
		eng.Invalidate()
	})
	win.SetKeyDownCallback(func(code uint32) {
		switch code {
		case common.KeyF:
			if rig.Mode() == store.ModeFreeLook {
				rig.ExitFreeLook()
				st.SetMode(store.ModeDefault)
			} else {
				// Free look preempts pillar focus; drop the stale
				// focus and panel before switching modes.
				if st.State().FocusedPillar != store.PillarNone {
					st.SetFocusedPillar(store.PillarNone)
					st.SetPanelSlug("")
				}
				rig.EnterFreeLook()
				st.SetMode(store.ModeFreeLook)
			}
		case common.KeyN:
			st.SetNight(!st.State().Night)
		case common.KeyR:
			st.SetRaining(!st.State().Raining)
		case common.KeyM:
			st.SetAudioMuted(!st.State().AudioMuted)
		case common.KeySpace:
			activation.SetHeld(true)
		case common.Key1:
			togglePillar(st, store.PillarLeft)
		case common.Key2:
			togglePillar(st, store.PillarCenter)
		case common.Key3:
			togglePillar(st, store.PillarRight)
		}
		eng.Invalidate()
	})
	win.SetKeyUpCallback(func(code uint32) {
		if code == common.KeySpace {
			activation.SetHeld(false)
			eng.Invalidate()
		}
	})
	win.SetResizeCallback(func(width, height int) {
		gpu.Resize(width, height)
		cam.SetAspect(float32(width) / float32(height))
		eng.Invalidate()
	})

	controllers := []gate.Controller{
		dayNight, lightning, rain, dust,
		rocks, rings, pillars, activation, overlay,
	}

	eng.SetFrameCallback(func(dt float32) bool {
		settled := true

		rig.SetShake(activation.ShakeMagnitude())
		for _, c := range controllers {
			if !c.Update(dt) {
				settled = false
			}
		}
		if !rig.Update(dt) {
			settled = false
		}

		if err := gpu.RenderFrame(cam, sc); err != nil {
			log.Printf("renderer: frame skipped: %v", err)
		}
		return settled
	})

	eng.Run()
}

// togglePillar focuses side, or returns to default when side is already
// focused.
func togglePillar(st *store.Store, side store.PillarSide) {
	if st.State().FocusedPillar == side {
		st.SetFocusedPillar(store.PillarNone)
		st.SetPanelSlug("")
		return
	}
	st.SetFocusedPillar(side)
}
