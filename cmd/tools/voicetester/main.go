// Command voicetester synthesizes a line of text through the voice client
// and writes the result to a WAV file for manual listening checks.
package main

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aadinq/catty/backend/internal/config"
	"github.com/aadinq/catty/backend/internal/service/voice"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	text := flag.String("text", "", "text to synthesize")
	outputPath := flag.String("out", "", "output WAV path (default auto-generated)")
	voiceName := flag.String("voice", "", "voice name, defaults to the configured voice")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")

	flag.Parse()

	if strings.TrimSpace(*text) == "" {
		flag.Usage()
		log.Fatal("provide text to synthesize via -text")
	}

	voiceCfg := cfg.Voice
	voiceCfg.Enabled = true
	if *voiceName != "" {
		voiceCfg.Voice = *voiceName
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := voice.NewClient(ctx, voiceCfg)
	if err != nil {
		log.Fatalf("failed to initialize voice client: %v", err)
	}
	if client == nil {
		log.Fatal("voice client unavailable, check GEMINI_API_KEY")
	}

	log.Printf("synthesizing: voice=%s model=%s", voiceCfg.Voice, voiceCfg.Model)

	encoded := client.Synthesize(ctx, *text)
	if encoded == "" {
		log.Fatal("synthesis returned no audio")
	}

	pcm, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Fatalf("failed to decode audio payload: %v", err)
	}

	path := *outputPath
	if path == "" {
		path = fmt.Sprintf("voice-output-%d.wav", time.Now().Unix())
	}

	if err := os.WriteFile(path, wrapWAV(pcm, client.SampleRate()), 0o644); err != nil {
		log.Fatalf("failed to write audio file: %v", err)
	}

	seconds := float64(len(pcm)) / 2 / float64(client.SampleRate())
	log.Printf("synthesis succeeded: wrote %s (%.1fs of audio)", path, seconds)
}

// wrapWAV prefixes raw PCM16 mono samples with a RIFF header so standard
// players can open the file.
func wrapWAV(pcm []byte, sampleRate int) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	buf := make([]byte, 0, 44+len(pcm))
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+len(pcm)))
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, channels)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(blockAlign))
	buf = binary.LittleEndian.AppendUint16(buf, bitsPerSample)
	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(pcm)))
	buf = append(buf, pcm...)
	return buf
}
