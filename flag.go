package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

var (
	hf         bool
	configPath string
	logLevel   string

	resolution  int
	workerCount int
)

// supported grid spacings in arc seconds, each divides 3600 evenly
var resolutions = map[int]bool{1: true, 3: true, 10: true, 30: true, 60: true}

func InitFlag() {
	flag.BoolVar(&hf, "h", false, "this help")
	flag.StringVar(&configPath, "c", "./conf/conf.toml", "set config `file`")
	flag.StringVar(&logLevel, "l", "info", "set log level (default: info)")
	flag.Usage = usage
	flag.Parse()

	if hf {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		flag.Usage()
		os.Exit(1)
	}

	r, err := strconv.Atoi(args[0])
	if err != nil || !resolutions[r] {
		fmt.Fprintf(os.Stderr, "unsupported resolution %q\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
	resolution = r

	workerCount = 4
	if len(args) == 2 {
		w, err := strconv.Atoi(args[1])
		if err != nil || (w != 4 && w != 16) {
			fmt.Fprintf(os.Stderr, "unsupported worker count %q\n\n", args[1])
			flag.Usage()
			os.Exit(1)
		}
		workerCount = w
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `landmask version: landmask/v0.1.0
Usage: landmask [-h] [-c filename] [-l logLevel] RESOLUTION [WORKERS]

  RESOLUTION   mask resolution in arc seconds (1, 3, 10, 30 or 60)
  WORKERS      rasterizer workers per tile (4 or 16, default 4)
`)
	flag.PrintDefaults()
}
