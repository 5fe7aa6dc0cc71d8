package trainer

import "github.com/neurlang/sentiment/net"

// Resume loads previously saved weights into the model when the resume
// flag is set, so an interrupted run can continue from its last save.
func Resume(model net.Classifier, resume *bool, dstmodel *string) {
	if resume != nil && *resume && dstmodel != nil && *dstmodel != "" {
		if err := net.ReadCompressedWeightsFromFile(model, *dstmodel); err != nil {
			println(err.Error())
		}
	}
}
