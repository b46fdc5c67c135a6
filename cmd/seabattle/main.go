package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"seabattle/internal/app"
	"seabattle/internal/bot"
	"seabattle/internal/cli"
	"seabattle/internal/codec"
	"seabattle/internal/config"
	"seabattle/internal/game"
	"seabattle/internal/logging"
	"seabattle/internal/storage"
	"seabattle/internal/zk"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "play":
		cmdPlay()
	case "gen":
		cmdGen()
	case "commit":
		cmdCommit()
	case "prove":
		cmdProve()
	case "verify":
		cmdVerify()
	default:
		usage()
	}
}

func usage() {
	fmt.Print(`Sea Battle CLI

Commands:
  play    --config .
  gen     --out fleet.csv
  commit  --fleet fleet.csv --secret secret.json --keys ./keys
  prove   --secret secret.json --keys ./keys --cell C5 --out proof.json
  verify  --vk ./keys/shot.vk --root ROOT_HEX --cell C5 --proof proof.json

`)
}

func newLogger() zerolog.Logger {
	return logging.New(os.Stderr, config.GetString("logLevel"))
}

func cmdPlay() {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	configDir := fs.String("config", ".", "directory containing seabattle.cfg.json")
	_ = fs.Parse(os.Args[2:])

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := newLogger()

	dataDir := config.GetString("dataDir")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	fmt.Println("Welcome to Sea Battle!")
	playerFleet, err := prompter.Fleet()
	if err != nil {
		log.Fatal().Err(err).Msg("fleet entry failed")
	}
	if err := storage.SaveFleet(filepath.Join(dataDir, "player_ships.csv"), playerFleet); err != nil {
		log.Warn().Err(err).Msg("could not save player fleet")
	}

	botFleet, err := bot.RandomFleet(rng)
	if err != nil {
		log.Fatal().Err(err).Msg("bot fleet generation failed")
	}
	if err := storage.SaveFleet(filepath.Join(dataDir, "bot_ships.csv"), botFleet); err != nil {
		log.Warn().Err(err).Msg("could not save bot fleet")
	}

	state, err := game.NewState(playerFleet, botFleet)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid game setup")
	}

	var commitment *zk.Commitment
	keysDir := config.GetString("zk.keysDir")
	if config.GetBool("zk.enabled") {
		if err := zk.EnsureKeys(keysDir); err != nil {
			log.Fatal().Err(err).Msg("zk key setup failed")
		}
		commitment, err = zk.Commit(state.BotShips())
		if err != nil {
			log.Fatal().Err(err).Msg("board commitment failed")
		}
		if err := saveJSON(filepath.Join(dataDir, "commitment.json"), commitment); err != nil {
			log.Warn().Err(err).Msg("could not save commitment")
		}
		fmt.Println("Bot board committed. ROOT:", commitment.RootHex)
	}

	turnLog, err := storage.NewTurnLog(filepath.Join(dataDir, "game_state.csv"))
	if err != nil {
		log.Fatal().Err(err).Msg("turn log setup failed")
	}
	archive, err := storage.OpenArchive(config.GetString("db.path"))
	if err != nil {
		log.Fatal().Err(err).Msg("archive setup failed")
	}
	defer archive.Close()

	session := app.NewSession(state, bot.NewTracker(rng, log), app.Options{
		Log:        log,
		Moves:      prompter,
		Out:        os.Stdout,
		TurnLog:    turnLog,
		Archive:    archive,
		Commitment: commitment,
		KeysDir:    keysDir,
		BotDelay:   time.Duration(config.GetInt("botDelayMs")) * time.Millisecond,
	})
	winner, err := session.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("match aborted")
	}
	log.Info().Stringer("winner", winner).Msg("match finished")
}

func cmdGen() {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	out := fs.String("out", "fleet.csv", "output fleet file")
	_ = fs.Parse(os.Args[2:])

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fleet, err := bot.RandomFleet(rng)
	if err != nil {
		fatal(err)
	}
	if err := storage.SaveFleet(*out, fleet); err != nil {
		fatal(err)
	}
	fmt.Println("✓ wrote", *out)
}

func cmdCommit() {
	fs := flag.NewFlagSet("commit", flag.ExitOnError)
	fleetPath := fs.String("fleet", "fleet.csv", "fleet layout file")
	secretPath := fs.String("secret", "secret.json", "defender secret state")
	keysDir := fs.String("keys", "./keys", "keys directory")
	_ = fs.Parse(os.Args[2:])

	fleet, err := storage.LoadFleet(*fleetPath)
	if err != nil {
		fatal(err)
	}
	if err := fleet.Validate(); err != nil {
		fatal(err)
	}
	if err := zk.EnsureKeys(*keysDir); err != nil {
		fatal(err)
	}

	board := fleet.ShipBoard()
	com, err := zk.Commit(&board)
	if err != nil {
		fatal(err)
	}
	if err := saveJSON(*secretPath, com); err != nil {
		fatal(err)
	}
	fmt.Println("ROOT:", com.RootHex)
	fmt.Println("✓ wrote", *secretPath)
}

func cmdProve() {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	secretPath := fs.String("secret", "secret.json", "defender secret state")
	keysDir := fs.String("keys", "./keys", "keys directory")
	cell := fs.String("cell", "", "attacked cell, e.g. C5")
	out := fs.String("out", "proof.json", "proof output")
	_ = fs.Parse(os.Args[2:])

	coord, err := codec.ParseCoord(*cell)
	if err != nil {
		fatal(err)
	}
	var com zk.Commitment
	if err := loadJSON(*secretPath, &com); err != nil {
		fatal(err)
	}
	sp, err := zk.ProveShot(*keysDir, &com, coord)
	if err != nil {
		fatal(err)
	}
	if err := saveJSON(*out, sp); err != nil {
		fatal(err)
	}
	result := "MISS"
	if sp.Public.Hit == 1 {
		result = "HIT"
	}
	fmt.Printf("✓ wrote %s (result: %s)\n", *out, result)
}

func cmdVerify() {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	vkPath := fs.String("vk", "./keys/shot.vk", "verifying key file")
	rootHex := fs.String("root", "", "commitment root, hex prefixed 0x")
	cell := fs.String("cell", "", "attacked cell, e.g. C5")
	proofPath := fs.String("proof", "proof.json", "proof payload json")
	_ = fs.Parse(os.Args[2:])

	if *rootHex == "" {
		fatal(fmt.Errorf("--root required"))
	}
	coord, err := codec.ParseCoord(*cell)
	if err != nil {
		fatal(err)
	}
	com := zk.Commitment{RootHex: *rootHex}
	root, err := com.Root()
	if err != nil {
		fatal(err)
	}

	var sp zk.ShotProof
	if err := loadJSON(*proofPath, &sp); err != nil {
		fatal(err)
	}
	if sp.Public.Index != coord.Index() {
		fatal(fmt.Errorf("proof is for cell index %d, expected %d", sp.Public.Index, coord.Index()))
	}
	ok, err := zk.VerifyShot(*vkPath, &sp, root)
	if err != nil || !ok {
		fatal(fmt.Errorf("invalid proof: %v", err))
	}
	if sp.Public.Hit == 1 {
		fmt.Println("HIT")
	} else {
		fmt.Println("MISS")
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func loadJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}
