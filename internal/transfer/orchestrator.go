package transfer

import (
	"sync"

	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/discovery"
)

// Run fans out tcpN TCP and udpN UDP transfer units against the endpoint,
// all fully in parallel, and blocks until every unit has produced a Result.
// IDs are issued in creation order starting at 1, TCP before UDP, and the
// returned slice is indexed by that order regardless of completion order.
// A failed unit does not affect its siblings; there are no retries.
func Run(ep discovery.Endpoint, fileSize uint64, tcpN, udpN int, cfg config.Config) []Result {
	results := make([]Result, tcpN+udpN)
	var wg sync.WaitGroup

	id := 1
	for i := 0; i < tcpN; i++ {
		job := Job{ID: id, Proto: ProtoTCP, Endpoint: ep, FileSize: fileSize}
		id++
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[job.ID-1] = RunTCP(job, cfg)
		}()
	}
	for i := 0; i < udpN; i++ {
		job := Job{ID: id, Proto: ProtoUDP, Endpoint: ep, FileSize: fileSize}
		id++
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[job.ID-1] = RunUDP(job, cfg)
		}()
	}

	wg.Wait()
	return results
}
