// gatewaycheck probes the API Gateway with the same client and timeout the
// server uses. Exit code 0 means reachable; handy as a container healthcheck
// and for debugging "is it us or the gateway" from a shell.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Sergi0014/compras-microservicio-sprint/internal/config"
	"github.com/Sergi0014/compras-microservicio-sprint/internal/gateway"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	gw := gateway.New(cfg.GatewayURL, cfg.GatewayTimeout(), gateway.DefaultCircuitBreakerConfig())
	if !gw.CheckConnection(context.Background()) {
		fmt.Fprintf(os.Stderr, "gateway %s: desconectado\n", cfg.GatewayURL)
		os.Exit(1)
	}
	fmt.Printf("gateway %s: conectado\n", cfg.GatewayURL)
}
