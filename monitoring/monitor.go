// Package monitoring inspects the simulator process: its frame tables, its
// resource usage and where it spends CPU time.
package monitoring

import (
	"bytes"
	"io"
	"os"
	"runtime/pprof"
	"sort"

	"github.com/google/pprof/profile"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// DumpState serializes v as JSON, following pointers up to maxDepth levels.
func DumpState(w io.Writer, v any, maxDepth int) error {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(v)
	serializer.SetMaxDepth(maxDepth)

	return serializer.Serialize(w)
}

// Resources is the resource usage of the current process.
type Resources struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

// ResourceUsage measures the CPU and resident memory of the current process.
func ResourceUsage() (Resources, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Resources{}, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return Resources{}, err
	}

	memory, err := p.MemoryInfo()
	if err != nil {
		return Resources{}, err
	}

	return Resources{
		CPUPercent: cpuPercent,
		MemorySize: memory.RSS,
	}, nil
}

// FunctionCost is the CPU time attributed to one function.
type FunctionCost struct {
	Name  string
	Value int64
}

// ProfileSummary lists the functions that were on CPU while profiling, most
// expensive first.
type ProfileSummary struct {
	SampleType string
	Unit       string
	Total      int64
	Functions  []FunctionCost
}

// ProfileCPU runs fn under the CPU profiler and summarizes the flat cost of
// every leaf function.
func ProfileCPU(fn func()) (*ProfileSummary, error) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		return nil, err
	}

	fn()

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		return nil, err
	}

	return summarize(prof), nil
}

func summarize(prof *profile.Profile) *ProfileSummary {
	summary := &ProfileSummary{}

	valueIndex := len(prof.SampleType) - 1
	if valueIndex < 0 {
		return summary
	}

	summary.SampleType = prof.SampleType[valueIndex].Type
	summary.Unit = prof.SampleType[valueIndex].Unit

	costs := make(map[string]int64)
	for _, sample := range prof.Sample {
		value := sample.Value[valueIndex]
		summary.Total += value

		if len(sample.Location) == 0 || len(sample.Location[0].Line) == 0 {
			costs["<unknown>"] += value
			continue
		}

		fn := sample.Location[0].Line[0].Function
		if fn == nil {
			costs["<unknown>"] += value
			continue
		}

		costs[fn.Name] += value
	}

	for name, value := range costs {
		summary.Functions = append(summary.Functions,
			FunctionCost{Name: name, Value: value})
	}

	sort.Slice(summary.Functions, func(i, j int) bool {
		a, b := summary.Functions[i], summary.Functions[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}

		return a.Name < b.Name
	})

	return summary
}

// Top returns at most n of the most expensive functions.
func (s *ProfileSummary) Top(n int) []FunctionCost {
	if n > len(s.Functions) {
		n = len(s.Functions)
	}

	return s.Functions[:n]
}
