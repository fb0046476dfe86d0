package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openshot-go/prerollcache/internal/preroll"
)

var (
	probeWidth      int
	probeHeight     int
	probeSampleRate int
	probeChannels   int
	probeFPS        float64
	probeMaxBytes   int64
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Compute the per-frame byte estimate and paused-mode window size",
	Run: func(cmd *cobra.Command, args []string) {
		bytesPerFrame := preroll.GetBytes(probeWidth, probeHeight, probeSampleRate, probeChannels, probeFPS)
		fmt.Printf("bytes per frame: %d\n", bytesPerFrame)

		if probeMaxBytes <= 0 || bytesPerFrame <= 0 {
			logrus.Info("no byte budget given; paused-mode window size is not computed")
			return
		}
		frames := float64(probeMaxBytes) / float64(bytesPerFrame)
		fmt.Printf("frames that fit in %d bytes at 0.9 ahead: %.1f\n", probeMaxBytes, frames*0.9)
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeWidth, "width", 1920, "frame width")
	probeCmd.Flags().IntVar(&probeHeight, "height", 1080, "frame height")
	probeCmd.Flags().IntVar(&probeSampleRate, "sample-rate", 48000, "audio sample rate")
	probeCmd.Flags().IntVar(&probeChannels, "channels", 2, "audio channel count")
	probeCmd.Flags().Float64Var(&probeFPS, "fps", 29.97, "frame rate")
	probeCmd.Flags().Int64Var(&probeMaxBytes, "max-bytes", 0, "cache byte budget (0 = don't compute a window size)")
}
