package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/shiroemons/go-dacqpos/pkg/dacq"
)

var (
	limitFlag  = pflag.IntP("limit", "n", 10, "maximum number of samples to print (0 = all)")
	recordFlag = pflag.BoolP("record", "r", false, "also print the corrected 20-byte record in hex")
)

func main() {
	pflag.Parse()

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Println("使用方法: posdump [オプション] <.binファイル>")
		fmt.Println("オプション:")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		os.Exit(1)
	}

	scanner, err := dacq.NewScanner(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %s: %v\n", args[0], err)
		os.Exit(1)
	}

	fmt.Printf("%8s %8s %6s %6s %6s %6s %6s %6s %6s\n",
		"packet", "time", "x1", "y1", "x2", "y2", "pix1", "pix2", "total")

	count := 0
	for scanner.Next() {
		s, err := dacq.DecodeSample(scanner.Packet())
		if err != nil {
			fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%8d %8d %6d %6d %6d %6d %6d %6d %6d\n",
			s.PacketNumber, s.Timestamp,
			s.X1, s.Y1, s.X2, s.Y2,
			s.NumPix1, s.NumPix2, s.TotalPix)
		if *recordFlag {
			fmt.Printf("%8s % x\n", "", s.Record())
		}

		count++
		if *limitFlag > 0 && count >= *limitFlag {
			break
		}
	}

	fmt.Printf("位置パケット %d 件を表示しました\n", count)
}
