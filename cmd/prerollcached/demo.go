package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openshot-go/prerollcache/internal/contracts"
	"github.com/openshot-go/prerollcache/internal/logger"
	"github.com/openshot-go/prerollcache/internal/mockreader"
	"github.com/openshot-go/prerollcache/internal/preroll"
	"github.com/openshot-go/prerollcache/internal/settings"
)

var (
	demoSpeed      int
	demoSeek       int64
	demoDuration   time.Duration
	demoMinPreroll int
	demoMaxPreroll int
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the pre-roll worker against an in-memory mock reader",
	Run: func(cmd *cobra.Command, args []string) {
		info := contracts.ReaderInfo{
			Width: 1920, Height: 1080,
			FPS:        contracts.FrameRate{Num: 30000, Den: 1001},
			SampleRate: 48000,
			Channels:   2,
		}
		cache := mockreader.NewCache(1 << 30)
		reader := mockreader.WithPreviewAndClearable(mockreader.NewReader(info, cache), 640, 360)

		st := settings.Defaults()
		st.MinPreroll = demoMinPreroll
		st.MaxPreroll = demoMaxPreroll

		log, err := logger.New("")
		if err != nil {
			logrus.Fatal(err)
		}
		w := preroll.New(reader, st, log)

		if demoSeek > 0 {
			w.SeekPreroll(demoSeek, true)
		}
		w.SetSpeed(demoSpeed)
		w.Play()

		ctx, cancel := context.WithTimeout(context.Background(), demoDuration)
		defer cancel()

		done := make(chan struct{})
		go func() {
			w.Run(ctx)
			close(done)
		}()

		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				fmt.Printf("final: display_frame=%d cached_frame_count=%d ready=%v\n",
					w.CurrentDisplayFrame(), w.CachedFrameCount(), w.IsReady())
				return
			case <-ticker.C:
				fmt.Printf("display_frame=%d cached_frame_count=%d ready=%v\n",
					w.CurrentDisplayFrame(), w.CachedFrameCount(), w.IsReady())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVar(&demoSpeed, "speed", 1, "playback speed (0 = paused, negative = reverse)")
	demoCmd.Flags().Int64Var(&demoSeek, "seek", 0, "seek to this frame before playing (0 = don't seek)")
	demoCmd.Flags().DurationVar(&demoDuration, "duration", 3*time.Second, "how long to run the demo")
	demoCmd.Flags().IntVar(&demoMinPreroll, "min-preroll", settings.DefaultMinPrerollFrames, "minimum frames visited before isReady")
	demoCmd.Flags().IntVar(&demoMaxPreroll, "max-preroll", settings.DefaultMaxPrerollFrames, "window size during playback")
}
