package main

func main() {
	// console flags and positional arguments
	InitFlag()
	// signal listener for clean abort
	InitSafeExit()
	// configuration file + environment
	InitConf(configPath)
	// logging
	InitLog()
	// run the build
	InitBuild()
}
