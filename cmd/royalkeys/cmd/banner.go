package cmd

import (
	"fmt"
)

const banner = `
  _____                   _ _  __
 |  __ \                 | | |/ /
 | |__) |___  _   _  __ _| | ' / ___ _   _ ___
 |  _  // _ \| | | |/ _` + "`" + ` | |  < / _ \ | | / __|
 | | \ \ (_) | |_| | (_| | | . \  __/ |_| \__ \
 |_|  \_\___/ \__, |\__,_|_|_|\_\___|\__, |___/
               __/ |                  __/ |
              |___/                  |___/
`

func printBanner() {
	fmt.Printf("\x1b[33m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  Digital License Key Storefront - Version %s\x1b[0m\n\n", Version)
}
