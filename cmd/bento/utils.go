package main

import (
	"encoding/json"
	"fmt"
	"log"
)

// Most commands print a json summary of what they did.
func PrintJson(obj interface{}) {
	rawjson, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		log.Fatalln("Couldn't serialize json: ", err)
	}
	fmt.Println(string(rawjson))
}
