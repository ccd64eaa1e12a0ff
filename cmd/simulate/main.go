package main

import (
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/alexflint/go-arg"
	"github.com/hscells/interleaving"
	"github.com/hscells/interleaving/cmd"
	"github.com/hscells/interleaving/eval"
	"github.com/hscells/interleaving/output"
	"github.com/hscells/interleaving/simulation"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"io/ioutil"
	"log"
	"os"
	"path"
	"strconv"
)

var (
	name    = "simulate"
	version = "19.Oct.2026"
	author  = "Harry Scells"
)

type args struct {
	Format   string `help:"Output format of the preferences (json or csv)" arg:"-f"`
	Progress bool   `help:"Show a progress bar" arg:"-p"`
	RunDir   string `help:"Write the run of each ranker to this directory" arg:"-r"`
	Config   string `help:"Path to the experiment configuration" arg:"required,positional"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

type config struct {
	Dataset     string   `toml:"dataset"`
	NumPerQuery int      `toml:"num_per_query"`
	TopK        int      `toml:"top_k"`
	Seed        uint64   `toml:"seed"`
	Method      string   `toml:"method"`
	SampleNum   int      `toml:"sample_num"`
	Measures    []string `toml:"measures"`
	Rankers     []int    `toml:"rankers"`
	User        struct {
		Click []float64 `toml:"click"`
		Stop  []float64 `toml:"stop"`
	} `toml:"user"`
}

func loadConfig(p string) (config, error) {
	c := config{
		NumPerQuery: 1,
		TopK:        10,
		Method:      "teamdraft",
		Measures:    []string{"nDCG@10"},
	}
	if _, err := toml.DecodeFile(p, &c); err != nil {
		return c, errors.Wrapf(err, "reading %s", p)
	}
	if len(c.Rankers) < 2 {
		return c, errors.New("at least two rankers are required")
	}
	if len(c.User.Click) == 0 {
		u := simulation.NewUser()
		c.User.Click, c.User.Stop = u.ClickProbabilities, u.StopProbabilities
	}
	return c, nil
}

func main() {
	args := args{Format: "json"}
	arg.MustParse(&args)

	c, err := loadConfig(args.Config)
	if err != nil {
		cmd.Fatal(err)
	}
	formatter, ok := output.PreferenceFormatterByName(args.Format)
	if !ok {
		log.Fatalf("unknown format %s", args.Format)
	}
	var evaluators []eval.Evaluator
	for _, m := range c.Measures {
		e, ok := eval.ByName(m)
		if !ok {
			log.Fatalf("unknown measure %s", m)
		}
		evaluators = append(evaluators, e)
	}
	factory, err := interleaving.MethodFactory(c.Method)
	if err != nil {
		cmd.Fatal(err)
	}

	f, err := os.Open(c.Dataset)
	if err != nil {
		cmd.Fatal(err)
	}
	ds, err := simulation.ReadDataset(f)
	f.Close()
	if err != nil {
		cmd.Fatal(err)
	}
	log.Printf("read %d queries from %s", len(ds.Queries), c.Dataset)

	opts := []func(*simulation.Simulator){
		simulation.NumPerQuery(c.NumPerQuery),
		simulation.TopK(c.TopK),
		simulation.Progress(args.Progress),
	}
	if c.Seed > 0 {
		opts = append(opts, simulation.RandomSource(rand.New(rand.NewSource(c.Seed))))
	}
	sim, err := simulation.NewSimulator(ds, opts...)
	if err != nil {
		cmd.Fatal(err)
	}

	rankers := make([]simulation.Ranker, len(c.Rankers))
	names := make([]string, len(c.Rankers))
	for i, feature := range c.Rankers {
		rankers[i] = simulation.FeatureRanker(feature)
		names[i] = rankers[i].Name
	}

	if len(args.RunDir) > 0 {
		for _, r := range rankers {
			if err := writeRun(sim, r, path.Join(args.RunDir, r.Name+".run")); err != nil {
				cmd.Fatal(err)
			}
		}
	}

	var methodOpts []interleaving.Option
	if c.SampleNum > 0 {
		methodOpts = append(methodOpts, interleaving.SampleNum(c.SampleNum))
	}
	user := simulation.User{ClickProbabilities: c.User.Click, StopProbabilities: c.User.Stop}
	log.Printf("simulating %s over %d rankers", c.Method, len(rankers))
	wins, err := sim.Evaluate(rankers, user, factory, methodOpts...)
	if err != nil {
		cmd.Fatal(err)
	}
	s, err := formatter(names, wins)
	if err != nil {
		cmd.Fatal(err)
	}
	fmt.Println(s)

	measures := sim.Measure(rankers, evaluators...)
	results := make(map[string]map[string]float64, len(measures))
	for i, scores := range measures {
		results[names[i]] = scores
	}
	s, err = output.JsonEvaluationFormatter(results)
	if err != nil {
		cmd.Fatal(err)
	}
	fmt.Println(s)

	for _, m := range c.Measures {
		scores := make(map[int]float64, len(measures))
		for i := range measures {
			scores[i] = measures[i][m]
		}
		log.Printf("error against %s: %s", m, strconv.FormatFloat(simulation.MeasureError(wins, scores), 'f', 4, 64))
	}
}

func writeRun(sim *simulation.Simulator, r simulation.Ranker, p string) error {
	f, err := ioutil.TempFile(path.Dir(p), path.Base(p))
	if err != nil {
		return err
	}
	if err := output.WriteRun(f, sim.Run(r)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}
