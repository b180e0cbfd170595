package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gtamap/internal/config"
	"gtamap/internal/logging"
	"gtamap/internal/tui"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "gtamap [dataset]",
	Short: "Terminal viewer for points of interest on a game world map",
	Long: `Shows a satellite or atlas base map of the game world with one marker per
point of interest. A dataset (JSON array, GeoJSON or CSV) can be given as an
argument or picked inside the viewer.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory holding "+config.FileName)
	rootCmd.Flags().StringP("map", "m", "", "Base map shown at start (satellite or atlas)")
	rootCmd.Flags().StringP("dir", "d", "", "Directory the file picker opens in")
	rootCmd.Flags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().String("log-file", "", "Log file path")

	_ = viper.BindPFlag("defaultMap", rootCmd.Flags().Lookup("map"))
	_ = viper.BindPFlag("datasetDir", rootCmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("logLevel", rootCmd.Flags().Lookup("log-level"))
	_ = viper.BindPFlag("logFile", rootCmd.Flags().Lookup("log-file"))
}

func run(cmd *cobra.Command, args []string) error {
	if err := config.Load(configDir); err != nil {
		return err
	}
	cfg, err := config.Current()
	if err != nil {
		return err
	}

	f, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer f.Close()
	logger := logging.New(f, cfg.LogLevel)

	def, err := cfg.Maps.Lookup(cfg.DefaultMap)
	if err != nil {
		return err
	}
	opts := tui.Options{
		Catalog:    cfg.Maps,
		DefaultMap: def,
		Icon:       tui.BuildHouseIcon(),
		Dir:        cfg.DatasetDir,
		Logger:     logger,
	}
	if len(args) > 0 {
		opts.Dataset = args[0]
	}
	logger.Info().Str("map", def.Key).Str("dataset", opts.Dataset).Msg("starting")

	p := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited")
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
