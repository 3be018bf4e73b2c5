// Package main provides a demonstration CLI for the golspi library.
package main

import (
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"gonum.org/v1/gonum/mat"

	"golspi"
	"golspi/basis"
	"golspi/domain"
	"golspi/experiment"
	"golspi/policy"
	"golspi/solver"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "golspi",
	Short: "Least-Squares Policy Iteration demonstrations",
	Long: `golspi runs demonstrations of Least-Squares Policy Iteration,
a batch reinforcement learning algorithm that learns an action-selection
policy from a fixed set of transition samples.`,
}

var (
	chainStates      int
	chainFailureProb float64
	chainBasis       string
	chainDegree      int
	chainCenters     int
	chainGamma       float64
	chainDiscount    float64
	chainSamples     int
	chainEvalSteps   int
	chainEpsilon     float64
	chainIterations  int
	chainDamping     float64
	chainSeed        uint64
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Run LSPI on the chain domain from the LSPI paper",
	Long: `Run LSPI on a discrete chain of states with two actions, left and
right, where entering an end state gives +1 reward. Samples are collected
with a uniformly random policy, a policy is learned from the batch, and
the learned policy's greedy return is compared against the random
policy's return.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChain()
	},
}

func init() {
	chainCmd.Flags().IntVar(&chainStates, "states", 10,
		"number of states in the chain (at least 4)")
	chainCmd.Flags().Float64Var(&chainFailureProb, "failure-prob", 0.1,
		"probability that an applied action fails")
	chainCmd.Flags().StringVar(&chainBasis, "basis", "exact",
		"basis function: exact, polynomial, or radial")
	chainCmd.Flags().IntVar(&chainDegree, "degree", 3,
		"degree of the polynomial basis")
	chainCmd.Flags().IntVar(&chainCenters, "centers", 5,
		"number of evenly spaced centers of the radial basis")
	chainCmd.Flags().Float64Var(&chainGamma, "gamma", 0.5,
		"kernel width parameter of the radial basis")
	chainCmd.Flags().Float64Var(&chainDiscount, "discount", 0.9,
		"discount factor")
	chainCmd.Flags().IntVar(&chainSamples, "samples", 5000,
		"number of samples to collect before learning")
	chainCmd.Flags().IntVar(&chainEvalSteps, "eval-steps", 1000,
		"number of steps to evaluate the learned policy for")
	chainCmd.Flags().Float64Var(&chainEpsilon, "epsilon", 1e-5,
		"convergence tolerance of the learning loop")
	chainCmd.Flags().IntVar(&chainIterations, "max-iterations", 20,
		"cap on policy-iteration steps")
	chainCmd.Flags().Float64Var(&chainDamping, "damping", 1e-6,
		"diagonal damping of the LSTDQ system")
	chainCmd.Flags().Uint64Var(&chainSeed, "seed", 42,
		"random seed")

	rootCmd.AddCommand(chainCmd)
}

// chainBasisFunction builds the basis function selected by the flags
func chainBasisFunction(numActions int) (basis.BasisFunction, error) {
	switch chainBasis {
	case "exact":
		return basis.NewExact([]int{chainStates}, numActions)
	case "polynomial":
		return basis.NewPolynomial(chainDegree, numActions)
	case "radial":
		centers := make([]mat.Vector, chainCenters)
		spacing := float64(chainStates) / float64(chainCenters)
		for i := range centers {
			centers[i] = mat.NewVecDense(1, []float64{float64(i) * spacing})
		}
		return basis.NewRadial(centers, chainGamma, numActions)
	}
	return nil, fmt.Errorf("unknown basis %q", chainBasis)
}

func runChain() error {
	chain, err := domain.NewChain(chainStates, domain.Ends,
		chainFailureProb, chainSeed)
	if err != nil {
		return err
	}

	fake, err := basis.NewFake(chain.NumActions())
	if err != nil {
		return err
	}
	sampling, err := policy.New(fake, chainDiscount, 1.0, nil,
		policy.RandomWins, chainSeed)
	if err != nil {
		return err
	}

	b, err := chainBasisFunction(chain.NumActions())
	if err != nil {
		return err
	}
	initial, err := policy.New(b, chainDiscount, 0.0,
		mat.NewVecDense(b.Size(), nil), policy.RandomWins, chainSeed)
	if err != nil {
		return err
	}

	lstdq, err := solver.NewLSTDQ(chainDamping)
	if err != nil {
		return err
	}

	config := experiment.Config{
		NumSamples:      chainSamples,
		EvaluationSteps: chainEvalSteps,
		Epsilon:         chainEpsilon,
		MaxIterations:   chainIterations,
	}
	exp, err := experiment.NewBatch(chain, sampling, initial, lstdq, config,
		os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("Collecting %d samples and evaluating for %d steps on a "+
		"%d-state chain (%s basis)\n", chainSamples, chainEvalSteps,
		chainStates, chainBasis)

	result, err := exp.Run()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Run:               %v\n", result.RunID)
	fmt.Printf("Termination:       %v\n", statusColor(result.Status))
	fmt.Printf("Random return:     %v\n", aurora.Yellow(
		fmt.Sprintf("%.0f", result.SamplingReturn)))
	fmt.Printf("Learned return:    %v\n", aurora.Green(
		fmt.Sprintf("%.0f", result.EvaluationReturn)))

	fmt.Println("\nGreedy actions by state:")
	for s := 0; s < chainStates; s++ {
		state := mat.NewVecDense(1, []float64{float64(s)})
		action, err := result.Learned.BestAction(state)
		if err != nil {
			return err
		}
		fmt.Printf("  state %2d: %s\n", s, chain.ActionName(action))
	}
	return nil
}

// statusColor renders a learning status with a traffic-light color
func statusColor(s golspi.Status) aurora.Value {
	if s == golspi.Converged {
		return aurora.Green(s.String())
	}
	return aurora.Red(s.String())
}
