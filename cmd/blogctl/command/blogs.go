package command

import (
	"errors"
	"fmt"
	"strconv"

	"blogdesk/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List blogs waiting for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedClient()
		if err != nil {
			return err
		}
		blogs, err := c.PendingBlogs()
		if err != nil {
			return err
		}
		if len(blogs) == 0 {
			color.HiBlack("Review queue is empty")
			return nil
		}

		idColor := color.New(color.FgCyan, color.Bold)
		for _, b := range blogs {
			author := b.AuthorID
			if b.Author != nil {
				author = b.Author.FirstName + " " + b.Author.LastName
			}
			idColor.Printf("#%-5d ", b.ID)
			fmt.Printf("%s ", b.Title)
			color.HiBlack("by %s, updated %s", author, b.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Approve or reject a pending blog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id < 1 {
			return fmt.Errorf("invalid blog id %q", args[0])
		}
		approve, _ := cmd.Flags().GetBool("approve")
		reject, _ := cmd.Flags().GetBool("reject")
		message, _ := cmd.Flags().GetString("message")

		req, err := reviewRequest(approve, reject, message)
		if err != nil {
			return err
		}

		c, err := authedClient()
		if err != nil {
			return err
		}
		blog, err := c.ReviewBlog(id, req)
		if err != nil {
			return err
		}

		if approve {
			success("Blog #%d approved", blog.ID)
		} else {
			color.Yellow("✓ Blog #%d rejected", blog.ID)
		}
		return nil
	},
}

func reviewRequest(approve, reject bool, message string) (*dto.AdminReviewRequest, error) {
	if approve == reject {
		return nil, errors.New("pass exactly one of --approve or --reject")
	}
	req := &dto.AdminReviewRequest{Status: "rejected"}
	if approve {
		req.Status = "approved"
	}
	if message != "" {
		req.AdminReviewMessage = &message
	}
	return req, nil
}

func init() {
	reviewCmd.Flags().Bool("approve", false, "Approve the blog")
	reviewCmd.Flags().Bool("reject", false, "Reject the blog")
	reviewCmd.Flags().StringP("message", "m", "", "Review message for the author")
}
