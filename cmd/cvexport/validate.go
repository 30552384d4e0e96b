package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Slavigrad/cv-export/internal/cvdata"
)

var validateCmd = &cobra.Command{
	Use:   "validate <cv.json>",
	Short: "Validate a CV file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	cv, err := cvdata.Load(args[0])
	if err != nil {
		var verr *cvdata.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("%s is not valid:\n", args[0])
			for _, v := range verr.Violations {
				fmt.Printf("  - %s\n", v)
			}
			return fmt.Errorf("%d schema violation(s)", len(verr.Violations))
		}
		return err
	}

	fmt.Printf("%s is valid: %s, %d experiences, %d projects, %d skills\n",
		args[0], cv.PersonalInfo.Name, len(cv.Experiences), len(cv.Projects), len(cv.Skills))
	return nil
}
