// Command cachegen memoizes command output in Redis.
//
//	cachegen get report:daily --ttl 1h -- ./build-report.sh
//	cachegen get motd --default "hello"
//	cachegen del report:daily
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(openRedis).Execute(); err != nil {
		os.Exit(1)
	}
}
