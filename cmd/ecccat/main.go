// Command ecccat is a minimal front end over package ecc: it splits a file
// into data and parity shards on disk, and reassembles a file from whichever
// shards are still present. It exists to exercise ecc.Coder end to end; the
// coding engine itself lives entirely in the ecc and internal packages.
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"lukechampine.com/us/ecc"
	"lukechampine.com/us/ecc/buffer"
)

var logger = log.New(os.Stderr, "ecccat: ", 0)

func main() {
	myApp := cli.NewApp()
	myApp.Name = "ecccat"
	myApp.Usage = "split a file into Reed-Solomon shards, or reassemble one from them"
	myApp.Version = "0.1.0"
	myApp.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "split a file into data and parity shards",
			ArgsUsage: "<datashards> <parityshards> <file>",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "padding",
					Value: 8,
					Usage: "minimum bytes of leading padding reserved on every shard, for a length prefix",
				},
			},
			Action: runEncode,
		},
		{
			Name:      "decode",
			Usage:     "reconstruct a file from whichever shard files are present",
			ArgsUsage: "<datashards> <parityshards> <file>",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "padding",
					Value: 8,
					Usage: "minimum bytes of leading padding reserved on every shard, must match encode",
				},
			},
			Action: runDecode,
		},
	}
	if err := myApp.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func shardPath(file string, i int) string {
	return fmt.Sprintf("%s.shard.%d", file, i)
}

func runEncode(c *cli.Context) error {
	d, p, file, err := parseShapeArgs(c)
	if err != nil {
		return err
	}
	minPadding := c.Int("padding")

	data, err := ioutil.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, "ecccat: reading input file")
	}

	coder, err := ecc.New(d, p)
	if err != nil {
		return errors.Wrap(err, "ecccat: constructing coder")
	}

	shards, err := buffer.Allocate(len(data), minPadding, d, d+p)
	if err != nil {
		return errors.Wrap(err, "ecccat: allocating shard buffers")
	}
	padding := buffer.ShardSize(0, minPadding, d)
	putLengthPrefix(shards, uint64(len(data)))

	perShard := (len(data) + d - 1) / d
	for i := 0; i < d; i++ {
		start := i * perShard
		end := start + perShard
		if end > len(data) {
			end = len(data)
		}
		if start < end {
			copy(shards[i][padding:], data[start:end])
		}
	}

	if err := coder.EncodeParity(shards, 0, len(shards[0])); err != nil {
		return errors.Wrap(err, "ecccat: computing parity")
	}

	for i, shard := range shards {
		if err := ioutil.WriteFile(shardPath(file, i), shard, 0644); err != nil {
			return errors.Wrapf(err, "ecccat: writing shard %d", i)
		}
	}
	logger.Printf("wrote %d shards (%d data, %d parity) for %s", d+p, d, p, file)
	return nil
}

func runDecode(c *cli.Context) error {
	d, p, file, err := parseShapeArgs(c)
	if err != nil {
		return err
	}

	coder, err := ecc.New(d, p)
	if err != nil {
		return errors.Wrap(err, "ecccat: constructing coder")
	}

	shards := make([][]byte, d+p)
	present := make([]bool, d+p)
	shardSize := 0
	for i := range shards {
		raw, err := ioutil.ReadFile(shardPath(file, i))
		if err != nil {
			continue
		}
		shards[i] = raw
		present[i] = true
		shardSize = len(raw)
	}
	if shardSize == 0 {
		return errors.New("ecccat: no shard files found")
	}
	for i := range shards {
		if shards[i] == nil {
			shards[i] = make([]byte, shardSize)
		}
	}

	if err := coder.DecodeMissing(shards, present, 0, shardSize); err != nil {
		return errors.Wrap(err, "ecccat: reconstructing missing shards")
	}

	padding := buffer.ShardSize(0, c.Int("padding"), d)
	fileLen := readLengthPrefix(shards)
	out := make([]byte, 0, fileLen)
	for i := 0; i < d && uint64(len(out)) < fileLen; i++ {
		remaining := fileLen - uint64(len(out))
		chunk := shards[i][padding:]
		if uint64(len(chunk)) > remaining {
			chunk = chunk[:remaining]
		}
		out = append(out, chunk...)
	}

	if err := ioutil.WriteFile(file, out, 0644); err != nil {
		return errors.Wrap(err, "ecccat: writing reassembled file")
	}
	logger.Printf("reassembled %s from %d/%d shards", file, countPresent(present), d+p)
	return nil
}

func parseShapeArgs(c *cli.Context) (d, p int, file string, err error) {
	args := c.Args()
	if len(args) != 3 {
		return 0, 0, "", errors.New("ecccat: expected <datashards> <parityshards> <file>")
	}
	d, err = strconv.Atoi(args.Get(0))
	if err != nil {
		return 0, 0, "", errors.Wrap(err, "ecccat: parsing datashards")
	}
	p, err = strconv.Atoi(args.Get(1))
	if err != nil {
		return 0, 0, "", errors.Wrap(err, "ecccat: parsing parityshards")
	}
	return d, p, args.Get(2), nil
}

func countPresent(present []bool) int {
	n := 0
	for _, ok := range present {
		if ok {
			n++
		}
	}
	return n
}

// putLengthPrefix and readLengthPrefix store the original file length in
// the first 8 bytes of every shard's padding region, so decode can discover
// how many trailing bytes of the last data shard are real content versus
// zero-fill, without a side-channel manifest.
func putLengthPrefix(shards [][]byte, n uint64) {
	for _, s := range shards {
		for i := 0; i < 8; i++ {
			s[i] = byte(n >> (8 * uint(7-i)))
		}
	}
}

func readLengthPrefix(shards [][]byte) (n uint64) {
	for i := 0; i < 8; i++ {
		n = n<<8 | uint64(shards[0][i])
	}
	return n
}
