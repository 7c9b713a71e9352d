package cmd

import (
	"fmt"
	"strings"

	"github.com/abenherik/nba-milestones-sub001/internal/export"
	"github.com/abenherik/nba-milestones-sub001/internal/upload"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	uploadDir  string
	onlyChunks []int
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload exported script chunks to the execution endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := viper.GetString("upload.endpoint")
		key := viper.GetString("upload.key")
		if endpoint == "" {
			return fmt.Errorf("upload.endpoint is required (set it in nbasync.yaml or via --endpoint)")
		}
		if key == "" {
			return fmt.Errorf("upload.key is required (set it in nbasync.yaml or via --key)")
		}

		chunks, err := export.ReadChunks(uploadDir)
		if err != nil {
			return err
		}
		if len(onlyChunks) > 0 {
			chunks = selectChunks(chunks, onlyChunks)
			if len(chunks) == 0 {
				return fmt.Errorf("no chunks match --only %v", onlyChunks)
			}
		}

		fmt.Printf("🏀 Uploading %d chunk(s) to %s\n", len(chunks), endpoint)
		u := &upload.Uploader{
			Endpoint: endpoint,
			Key:      key,
			Pause:    viper.GetDuration("upload.pause"),
		}
		res := u.Run(cmd.Context(), chunks)

		fmt.Println("\n📊 Upload Report:")
		fmt.Printf("Chunks sent    : %d\n", res.ChunksSent)
		fmt.Printf("Chunks failed  : %d\n", res.ChunksFailed)
		fmt.Printf("Statements run : %d\n", res.Statements)
		fmt.Printf("Rows inserted  : %d\n", res.RowsInserted)
		if res.RemoteErrors > 0 {
			fmt.Printf("Remote errors  : %d (check the endpoint logs)\n", res.RemoteErrors)
		}
		if len(res.FailedIndexes) > 0 {
			list := make([]string, len(res.FailedIndexes))
			for i, n := range res.FailedIndexes {
				list[i] = fmt.Sprintf("%d", n)
			}
			fmt.Printf("Resubmit failed chunks with: nbasync upload --only %s\n", strings.Join(list, ","))
		}
		return nil
	},
}

func selectChunks(chunks []export.Chunk, only []int) []export.Chunk {
	wanted := make(map[int]bool, len(only))
	for _, n := range only {
		wanted[n] = true
	}
	var kept []export.Chunk
	for _, c := range chunks {
		if wanted[c.Index] {
			kept = append(kept, c)
		}
	}
	return kept
}

func init() {
	RootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadDir, "dir", "d", "./export", "Directory holding the exported chunk files")
	uploadCmd.Flags().IntSliceVar(&onlyChunks, "only", []int{}, "Upload only these chunk indexes (comma-separated)")
	uploadCmd.Flags().String("endpoint", "", "Execution endpoint URL")
	uploadCmd.Flags().String("key", "", "Authorization key expected by the endpoint")
	uploadCmd.Flags().Duration("pause", upload.DefaultPause, "Pause between consecutive chunk uploads")

	viper.BindPFlag("upload.endpoint", uploadCmd.Flags().Lookup("endpoint"))
	viper.BindPFlag("upload.key", uploadCmd.Flags().Lookup("key"))
	viper.BindPFlag("upload.pause", uploadCmd.Flags().Lookup("pause"))
	viper.SetDefault("upload.pause", upload.DefaultPause)
}
