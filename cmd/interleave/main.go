package main

import (
	"encoding/json"
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/hscells/interleaving"
	"github.com/hscells/interleaving/cmd"
	"github.com/hscells/interleaving/output"
	"log"
	"os"
	"strings"
)

var (
	name    = "interleave"
	version = "19.Oct.2026"
	author  = "Harry Scells"
)

type args struct {
	Method      string  `help:"Interleaving method" arg:"-m"`
	MaxLength   int     `help:"Maximum length of the interleaved ranking (default: shortest list)" arg:"-l"`
	SampleNum   int     `help:"Number of rankings to sample up front" arg:"-n"`
	Seed        uint64  `help:"Random seed (default: current time)" arg:"-s"`
	Tau         float64 `help:"Softmax decay of probabilistic interleaving"`
	NoReplace   bool    `help:"Select lists without replacement in probabilistic interleaving"`
	Credit      string  `help:"Credit function of optimized methods (inverse or negative)"`
	BiasWeight  float64 `help:"Weight of the bias in roughly optimized interleaving"`
	AlwaysLoose bool    `help:"Always solve the relaxed program in roughly optimized interleaving"`
	Clicks      []int   `help:"Clicked positions of the interleaved ranking to evaluate" arg:"-c,separate"`
	Dump        string  `help:"Write the sampled rankings to this file" arg:"-d"`
	Store       string  `help:"Keep the sampled rankings in a store at this directory"`
	ListsFile   string  `help:"Path to the ranked lists" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s
methods: %s`, name, author, version, strings.Join(interleaving.MethodNames(), ", "))
}

func (a args) options() ([]interleaving.Option, error) {
	credit, err := interleaving.CreditByName(a.Credit)
	if err != nil {
		return nil, err
	}
	opts := []interleaving.Option{
		interleaving.MaxLength(a.MaxLength),
		interleaving.SampleNum(a.SampleNum),
		interleaving.Replace(!a.NoReplace),
		interleaving.CreditFunction(credit),
		interleaving.AlwaysLoose(a.AlwaysLoose),
	}
	if a.Seed > 0 {
		opts = append(opts, interleaving.Seed(a.Seed))
	}
	if a.Tau > 0 {
		opts = append(opts, interleaving.Tau(a.Tau))
	}
	if a.BiasWeight > 0 {
		opts = append(opts, interleaving.BiasWeight(a.BiasWeight))
	}
	return opts, nil
}

type result struct {
	Ranking     map[string]interface{}    `json:"ranking"`
	Scores      interleaving.Scores       `json:"scores,omitempty"`
	Preferences []interleaving.Preference `json:"preferences,omitempty"`
}

func main() {
	args := args{Method: "teamdraft"}
	arg.MustParse(&args)

	f, err := os.Open(args.ListsFile)
	if err != nil {
		cmd.Fatal(err)
	}
	lists, err := cmd.ReadLists(f)
	f.Close()
	if err != nil {
		cmd.Fatal(err)
	}

	opts, err := args.options()
	if err != nil {
		cmd.Fatal(err)
	}
	m, err := interleaving.NewMethod(args.Method, lists, opts...)
	if err != nil {
		cmd.Fatal(err)
	}
	log.Printf("created %s over %d lists", args.Method, len(lists))

	if len(args.Dump) > 0 {
		if err := interleaving.WriteRankings(m, args.Dump); err != nil {
			cmd.Fatal(err)
		}
		log.Printf("wrote sampled rankings to %s", args.Dump)
	}
	if len(args.Store) > 0 {
		key, err := output.NewDumpStore(args.Store).Put(m)
		if err != nil {
			cmd.Fatal(err)
		}
		log.Printf("stored sampled rankings under %s", key)
	}

	r := m.Interleave()
	res := result{Ranking: r.Dump()}
	if len(args.Clicks) > 0 {
		res.Scores, err = m.ComputeScores(r, args.Clicks)
		if err != nil {
			cmd.Fatal(err)
		}
		res.Preferences = interleaving.PreferencesFromScores(res.Scores, len(lists))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	if err := enc.Encode(res); err != nil {
		cmd.Fatal(err)
	}
}
