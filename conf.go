package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var conf *Conf

type Conf struct {
	App struct {
		Version string `toml:"version"`
		Title   string `toml:"title"`
	} `toml:"app"`
	Data struct {
		Root                string `toml:"root"`
		BoundaryDir         string `toml:"boundaryDir"`
		ReferenceMask       string `toml:"referenceMask"`
		ReferenceResolution int    `toml:"referenceResolution"`
	} `toml:"data"`
	Output struct {
		Directory      string `toml:"directory"`
		LogDir         string `toml:"logDir"`
		OutputTerminal bool   `toml:"outputTerminal"`
	} `toml:"output"`
}

// InitConf 初始化配置
func InitConf(cfgFile string) {
	if cfgFile == "" {
		cfgFile = "conf.toml"
	}
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Printf("config file(%s) not exist\n", cfgFile)
	} else {
		viper.SetConfigType("toml")
		viper.SetConfigFile(cfgFile)
		err := viper.ReadInConfig()
		if err != nil {
			fmt.Printf("read config file(%s) error, details: %s\n", viper.ConfigFileUsed(), err)
		}
	}
	viper.AutomaticEnv() // read in environment variables that match
	viper.BindEnv("data.root", "LANDMASK_DATADIR")

	viper.SetDefault("app.version", "v 0.1.0")
	viper.SetDefault("app.title", "Landmask Builder")
	viper.SetDefault("data.boundaryDir", "SWBD")
	viper.SetDefault("data.referenceMask", "srtm_mask/srtm_mask_30_second.msk")
	viper.SetDefault("data.referenceResolution", 30)
	viper.SetDefault("output.directory", "land_mask")
	viper.SetDefault("output.outputTerminal", true)

	err := viper.Unmarshal(&conf)
	if err != nil {
		fmt.Printf("config parse error, details: %s\n", err)
		os.Exit(1)
	}

	// the data root must come from the config file or LANDMASK_DATADIR
	if conf.Data.Root == "" {
		fmt.Println("data root directory is not set (data.root or LANDMASK_DATADIR)")
		os.Exit(1)
	}
}
