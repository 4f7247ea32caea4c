// Command bonnaroo-inject is a small client for the simulator's websocket
// control surface: it sends button presses and can tail the playback
// state broadcasts.
//
//	bonnaroo-inject RIGHT RIGHT VOL_UP
//	bonnaroo-inject -listen
//	bonnaroo-inject 0xF50ABF00
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Type string          `json:"type"`
	Ts   *time.Time      `json:"ts,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type pressData struct {
	Code   string `json:"code,omitempty"`
	Button string `json:"button,omitempty"`
}

func main() {
	var (
		wsURL    = flag.String("ws", "ws://127.0.0.1:3001/control", "Simulator control websocket URL")
		interval = flag.Int("interval", 450, "Delay between presses in milliseconds (stay above the input cooldown)")
		listen   = flag.Bool("listen", false, "Print state broadcasts until interrupted")
	)
	flag.Parse()

	if !*listen && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: bonnaroo-inject [OPTIONS] BUTTON|0xCODE ...")
		fmt.Fprintln(os.Stderr, "       bonnaroo-inject -listen")
		os.Exit(2)
	}

	u, err := url.Parse(*wsURL)
	if err != nil {
		log.Fatalf("invalid websocket URL: %v", err)
	}

	d := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := d.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()

	for i, arg := range flag.Args() {
		if i > 0 {
			time.Sleep(time.Duration(*interval) * time.Millisecond)
		}
		if err := sendPress(conn, arg); err != nil {
			log.Fatalf("send %q: %v", arg, err)
		}
		log.Printf("sent %s", arg)
	}

	if !*listen {
		return
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		conn.Close()
	}()

	log.Printf("listening for state broadcasts (press Ctrl+C to exit)")
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("bad message: %v", err)
			continue
		}
		if env.Type == "state" {
			fmt.Printf("%s\n", env.Data)
		}
	}
}

// sendPress wraps arg in a press envelope: hex strings go out as raw
// codes, anything else as a button name.
func sendPress(conn *websocket.Conn, arg string) error {
	press := pressData{Button: arg}
	if len(arg) > 2 && arg[0] == '0' && (arg[1] == 'x' || arg[1] == 'X') {
		press = pressData{Code: arg}
	}
	data, err := json.Marshal(press)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope{Type: "press", Data: data})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
