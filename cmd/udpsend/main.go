// ABOUTME: One-shot UDP send utility for poking at discovered peers
// ABOUTME: Sends a single greeting datagram to a given address and port
package main

import (
	"flag"
	"net"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

var port = flag.Int("p", 0, "Destination port")

func main() {
	_ = godotenv.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}

	flag.Parse()
	if flag.NArg() != 1 {
		logger.Fatal("usage: udpsend [-p port] <address>")
	}

	ip := net.ParseIP(flag.Arg(0))
	if ip == nil {
		logger.Fatal("not an IP address", "arg", flag.Arg(0))
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		logger.Fatal("failed to bind local socket", "err", err)
	}
	defer conn.Close()

	dst := &net.UDPAddr{IP: ip, Port: *port}
	if _, err := conn.WriteToUDP([]byte("Hello There"), dst); err != nil {
		logger.Fatal("send failed", "to", dst.String(), "err", err)
	}

	logger.Info("sent greeting", "to", dst.String())
}
